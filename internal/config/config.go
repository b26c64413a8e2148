// Package config loads credentials from the environment and optional
// settings from a global config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the credentials the pipeline needs.
type Config struct {
	GeminiAPIKey     string
	NotionToken      string
	NotionDatabaseID string
}

// ErrInvalidDatabaseID is returned when the Notion database ID is not
// a 32-character hex string (dashes allowed).
var ErrInvalidDatabaseID = errors.New("invalid Notion database ID")

// Load reads credentials from the environment, after loading a .env
// file from the working directory when one exists. All three variables
// are required; the error message lists every missing one.
func Load() (*Config, error) {
	// Missing .env is fine, variables may come from the environment.
	_ = godotenv.Load()

	cfg := &Config{
		GeminiAPIKey:     strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		NotionToken:      strings.TrimSpace(os.Getenv("NOTION_TOKEN")),
		NotionDatabaseID: strings.TrimSpace(os.Getenv("NOTION_DATABASE_ID")),
	}

	var missing []string
	if cfg.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if cfg.NotionToken == "" {
		missing = append(missing, "NOTION_TOKEN")
	}
	if cfg.NotionDatabaseID == "" {
		missing = append(missing, "NOTION_DATABASE_ID")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s (see .env.example for a template)",
			strings.Join(missing, ", "))
	}

	id, err := NormalizeDatabaseID(cfg.NotionDatabaseID)
	if err != nil {
		return nil, err
	}
	cfg.NotionDatabaseID = id

	return cfg, nil
}

// NormalizeDatabaseID strips dashes from a Notion database ID and
// verifies the result is a 32-character hex string.
func NormalizeDatabaseID(id string) (string, error) {
	clean := strings.ReplaceAll(id, "-", "")
	if len(clean) != 32 {
		return "", fmt.Errorf("%w: %s (expected 32-character hex string, dashes allowed)", ErrInvalidDatabaseID, id)
	}
	for _, r := range clean {
		if !isHexDigit(r) {
			return "", fmt.Errorf("%w: %s (must be hexadecimal)", ErrInvalidDatabaseID, id)
		}
	}
	return clean, nil
}

func isHexDigit(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	}
	return false
}
