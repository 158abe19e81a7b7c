// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads credentials from a directory of plain-text files.
// The filename is the key and the trimmed contents are the value.
//
// Recognized keys: openalex-email, openalex-api-key.
package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/graphavalanche/pkg/types"
)

// Key files read by the CLI.
const (
	OpenAlexEmail  = "openalex-email"
	OpenAlexAPIKey = "openalex-api-key"
)

// DefaultDir is the secrets directory relative to the working directory.
const DefaultDir = ".secrets"

// Store holds the secrets found in one directory.
type Store map[string]string

// Load reads every regular, non-hidden file in dir. A missing directory
// yields an empty Store. Unreadable files are logged and skipped.
func Load(dir string, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := make(Store)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("could not read secret", "name", name, "error", err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			s[name] = value
		}
	}
	return s, nil
}

// Get returns the secret stored under name, or "".
func (s Store) Get(name string) string { return s[name] }

// ApplyOpenAlex fills the contact email and API key of cfg from the store.
// Values already set in cfg take precedence.
func (s Store) ApplyOpenAlex(cfg *types.OpenAlexConfig) {
	if cfg.Email == "" {
		cfg.Email = s.Get(OpenAlexEmail)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = s.Get(OpenAlexAPIKey)
	}
}
