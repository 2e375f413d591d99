package commands

import (
	"fmt"
	"path/filepath"

	"mcon/internal/api"
	"mcon/internal/config"
	"mcon/internal/history"
	"mcon/internal/models"
)

// session bundles the resolved configuration and API client of one command run
type session struct {
	cfg       *config.Config
	configDir string
	client    *api.Client
}

// newSession resolves flags over environment over config file and builds an API client
func newSession() (*session, error) {
	cfg := config.Default()
	if globalConfig != nil {
		c := *globalConfig
		cfg = &c
	}
	if flagHost != "" {
		cfg.ServerURL = flagHost
	}
	if flagOrgID != "" {
		cfg.OrgID = flagOrgID
	}

	configDir, err := config.GetGlobalConfigDir()
	if err != nil {
		return nil, fmt.Errorf("error getting global config directory: %w", err)
	}

	token := cfg.Token
	if flagToken != "" {
		token = flagToken
	}

	client := api.NewClient(cfg.ServerURL, token, models.NewTokenStore(configDir), api.Options{
		Timeout:  cfg.Timeout(),
		RetryMax: cfg.Retries(),
		Logger:   logger,
	})
	if client.AuthToken == "" {
		return nil, fmt.Errorf("%w: run 'mcon auth login' or set %s", models.ErrNotLoggedIn, config.EnvToken)
	}

	return &session{cfg: cfg, configDir: configDir, client: client}, nil
}

// orgID returns the configured organization
func (s *session) orgID() (string, error) {
	if s.cfg.OrgID == "" {
		return "", fmt.Errorf("%w: use --org-id, %s or 'mcon config set --org-id'", models.ErrNoOrganization, config.EnvOrgID)
	}
	return s.cfg.OrgID, nil
}

// history opens the local history database. Callers must close it.
func (s *session) history() (*history.Store, error) {
	return history.Open(filepath.Join(s.configDir, "history.db"), logger)
}

// recordToken stores a created token in the history, logging instead of failing
func (s *session) recordToken(auth *models.Authorization) {
	store, err := s.history()
	if err != nil {
		logger.Warn("history unavailable", "error", err)
		return
	}
	defer store.Close()

	if err := store.RecordToken(auth); err != nil {
		logger.Warn("failed to record token", "error", err)
	}
}

// recordDashboard stores a created dashboard in the history, logging instead of failing
func (s *session) recordDashboard(d *models.Dashboard, templateName string) {
	store, err := s.history()
	if err != nil {
		logger.Warn("history unavailable", "error", err)
		return
	}
	defer store.Close()

	if err := store.RecordDashboard(d, templateName); err != nil {
		logger.Warn("failed to record dashboard", "error", err)
	}
}
