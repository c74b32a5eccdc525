package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File loads rules from policy files on disk. A policy file is a flat YAML
// (or JSON, which the YAML parser accepts) mapping of rule name to rule text:
//
//	admin_required: "role:admin"
//	cloud_admin: "rule:admin_required and domain_id:admin_domain_id"
type File struct {
	path   string
	logger *slog.Logger
}

// NewFile creates a new file-based rule source. The path can be either a
// single file or a directory; for a directory, all .yaml, .yml and .json
// files are loaded and merged, with files later in lexical order overriding
// earlier ones on duplicate rule names.
func NewFile(path string, logger *slog.Logger) *File {
	if logger == nil {
		logger = slog.Default()
	}
	return &File{
		path:   path,
		logger: logger,
	}
}

// LoadRules loads all rules from the configured path.
func (s *File) LoadRules(ctx context.Context) (map[string]string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %q: %w", s.path, err)
	}

	var rules map[string]string
	if info.IsDir() {
		rules, err = s.loadDirectory(ctx)
	} else {
		rules, err = s.loadFile(s.path)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("loaded rules from source",
		"path", s.path,
		"rule_count", len(rules),
	)

	return rules, nil
}

// loadDirectory loads and merges all rule files from a directory.
func (s *File) loadDirectory(ctx context.Context) (map[string]string, error) {
	merged := make(map[string]string)

	err := filepath.Walk(s.path, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		switch filepath.Ext(path) {
		case ".yaml", ".yml", ".json":
		default:
			return nil
		}

		rules, err := s.loadFile(path)
		if err != nil {
			s.logger.Warn("failed to load rule file, skipping",
				"path", path,
				"error", err,
			)
			return nil // Skip invalid files
		}

		for name, text := range rules {
			merged[name] = text
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %q: %w", s.path, err)
	}

	return merged, nil
}

// loadFile loads a single rule file.
func (s *File) loadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}

	var rules map[string]string
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rule file %q: %w", path, err)
	}

	s.logger.Debug("loaded rule file",
		"path", path,
		"rule_count", len(rules),
	)

	return rules, nil
}
