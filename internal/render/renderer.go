package render

import (
	"go.uber.org/zap"

	"github.com/nhle/unsubmgr/internal/logger"
	"github.com/nhle/unsubmgr/internal/model"
)

// Mount is a container that displays a View. Replace discards whatever
// was shown before.
type Mount interface {
	Replace(v View)
}

// Mounts resolves container ids to mount points.
type Mounts interface {
	Mount(id string) (Mount, bool)
}

// MountMap is a Mounts backed by a plain map.
type MountMap map[string]Mount

// Mount implements Mounts.
func (m MountMap) Mount(id string) (Mount, bool) {
	mt, ok := m[id]
	return mt, ok
}

// Renderer draws email lists into mount points looked up by id.
type Renderer struct {
	mounts Mounts
	log    *zap.Logger
}

// New creates a Renderer over the given mount points.
func New(mounts Mounts, log *zap.Logger) *Renderer {
	return &Renderer{
		mounts: mounts,
		log:    logger.OrNop(log),
	}
}

// RenderList replaces the contents of the container with a list of
// records in the given mode. A container that does not exist is ignored;
// the return value reports whether anything was rendered.
func (r *Renderer) RenderList(
	containerID string,
	records []model.EmailRecord,
	mode model.DisplayMode,
	cb Callbacks,
) bool {
	mt, ok := r.mounts.Mount(containerID)
	if !ok || mt == nil {
		r.log.Debug("render target missing", zap.String("container", containerID))
		return false
	}

	mt.Replace(Build(records, mode, cb))
	r.log.Debug("rendered list",
		zap.String("container", containerID),
		zap.Stringer("mode", mode),
		zap.Int("count", len(records)),
	)
	return true
}
