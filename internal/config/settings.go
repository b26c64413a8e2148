package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings is the optional global configuration stored in
// ~/.config/paperflow/config.yml. Every field has a default, so a
// missing file is not an error.
type Settings struct {
	Model               string `yaml:"model,omitempty"`
	PollIntervalSeconds int    `yaml:"poll_interval_seconds,omitempty"`
	PollTimeoutSeconds  int    `yaml:"poll_timeout_seconds,omitempty"`
	LogFile             string `yaml:"log_file,omitempty"`
	HistoryDB           string `yaml:"history_db,omitempty"`
}

const (
	// SettingsDir is the directory name under XDG_CONFIG_HOME.
	SettingsDir = "paperflow"
	// SettingsFile is the settings file name.
	SettingsFile = "config.yml"

	defaultLogFile      = "paperflow.log"
	defaultHistoryDB    = "history.db"
	defaultPollInterval = 2
	defaultPollTimeout  = 300
)

// SettingsPath returns the path to the global settings file. Respects
// XDG_CONFIG_HOME, defaults to ~/.config/paperflow/config.yml.
func SettingsPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, SettingsDir, SettingsFile)
}

// LoadSettings loads the global settings file and fills in defaults.
// Returns default settings (not an error) if the file doesn't exist.
func LoadSettings() (*Settings, error) {
	return loadSettingsFrom(SettingsPath())
}

func loadSettingsFrom(path string) (*Settings, error) {
	s := &Settings{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading settings: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, s); err != nil {
				return nil, fmt.Errorf("parsing settings %s: %w", path, err)
			}
		}
	}

	if s.PollIntervalSeconds <= 0 {
		s.PollIntervalSeconds = defaultPollInterval
	}
	if s.PollTimeoutSeconds <= 0 {
		s.PollTimeoutSeconds = defaultPollTimeout
	}
	if s.LogFile == "" {
		s.LogFile = defaultLogFile
	}
	if s.HistoryDB == "" && path != "" {
		s.HistoryDB = filepath.Join(filepath.Dir(path), defaultHistoryDB)
	}

	return s, nil
}

// PollInterval returns the poll interval as a duration.
func (s *Settings) PollInterval() time.Duration {
	return time.Duration(s.PollIntervalSeconds) * time.Second
}

// PollTimeout returns the poll timeout as a duration.
func (s *Settings) PollTimeout() time.Duration {
	return time.Duration(s.PollTimeoutSeconds) * time.Second
}
