package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/nhle/unsubmgr/internal/api"
	"github.com/nhle/unsubmgr/internal/app"
	"github.com/nhle/unsubmgr/internal/credential"
	"github.com/nhle/unsubmgr/internal/logger"
	"github.com/nhle/unsubmgr/internal/model"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "unsubmgr: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the YAML configuration file")
	apiURL := flag.String("api", "", "backend base URL (overrides api.base_url)")
	setToken := flag.Bool("set-token", false, "read an API token from stdin and store it in the system keyring")
	clearToken := flag.Bool("clear-token", false, "remove the stored API token from the system keyring")
	writeConfig := flag.Bool("write-config", false, "write the effective configuration to --config and exit")
	showVersion := flag.Bool("version", false, "print version information and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "unsubmgr %s\n\n", version)
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment variables %s_<SECTION>_<KEY> override the config file,\n", model.EnvPrefix)
		fmt.Fprintf(os.Stderr, "e.g. %s_API_BASE_URL=http://localhost:8000\n", model.EnvPrefix)
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("unsubmgr %s\n", version)
		return nil
	}

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *apiURL != "" {
		cfg.API.BaseURL = strings.TrimRight(*apiURL, "/")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	switch {
	case *writeConfig:
		if err := model.SaveConfig(*configPath, cfg); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Printf("configuration written to %s\n", *configPath)
		return nil
	case *setToken:
		return storeToken(cfg.API.TokenCredential)
	case *clearToken:
		return removeToken(cfg.API.TokenCredential)
	}

	log, err := logger.New(logger.Config{File: cfg.Log.File, Level: cfg.Log.Level})
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	token, err := credential.Lookup(cfg.API.TokenCredential)
	if err != nil {
		// The backend may not require auth; carry on without a token.
		log.Warn("could not read API token from keyring",
			zap.String("credential", cfg.API.TokenCredential),
			zap.Error(err),
		)
	}

	client := api.NewClient(cfg.API.BaseURL,
		api.WithToken(token),
		api.WithLogger(log),
	)

	log.Info("starting",
		zap.String("version", version),
		zap.String("api", cfg.API.BaseURL),
		zap.String("scan_api", cfg.API.ScanURL()),
	)

	m := app.New(cfg, client, log)
	defer m.Close()

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}

func storeToken(key string) error {
	if key == "" {
		return errors.New("api.token_credential is not set")
	}

	fmt.Fprint(os.Stderr, "API token: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("reading token: %w", err)
	}
	token := strings.TrimSpace(line)
	if token == "" {
		return errors.New("empty token")
	}

	if err := credential.Set(key, token); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}
	fmt.Fprintf(os.Stderr, "token stored under %q\n", key)
	return nil
}

func removeToken(key string) error {
	if key == "" {
		return errors.New("api.token_credential is not set")
	}
	if err := credential.Delete(key); err != nil && !errors.Is(err, credential.ErrNotFound) {
		return fmt.Errorf("removing token: %w", err)
	}
	fmt.Fprintf(os.Stderr, "token %q removed\n", key)
	return nil
}
