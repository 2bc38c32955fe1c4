// Package migrations imports credentials written by earlier releases into
// the current credential store format.
package migrations

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Migrator converts legacy token files into store entries.
type Migrator struct {
	logger *slog.Logger
}

// NewMigrator creates a new credential migrator.
func NewMigrator(logger *slog.Logger) *Migrator {
	return &Migrator{
		logger: logger,
	}
}

// Migrate converts a legacy document into flat store entries. Returns:
// entries, wasMigrated, error. A document already in the current format
// (it carries a version field) is left alone.
func (m *Migrator) Migrate(ctx context.Context, data []byte) (map[string]string, bool, error) {
	version, err := m.detectVersion(data)
	if err != nil {
		return nil, false, fmt.Errorf("failed to detect credential file version: %w", err)
	}

	m.logger.DebugContext(ctx, "Detected credential file version", "version", version)

	switch version {
	case legacyVersion:
		entries, err := fromConfigstore(data)
		if err != nil {
			return nil, false, fmt.Errorf("failed to migrate legacy credentials: %w", err)
		}
		m.logger.InfoContext(ctx, "Migrated legacy credentials", "keys", keys(entries))
		return entries, true, nil
	case CurrentVersion:
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("unsupported credential file version: %s", version)
	}
}

// detectVersion reads the version field. Legacy files are JSON objects
// without one; JSON is valid YAML so one decoder serves both.
func (m *Migrator) detectVersion(data []byte) (string, error) {
	var versionCheck struct {
		Version any `yaml:"version"`
	}

	if err := yaml.Unmarshal(data, &versionCheck); err != nil {
		return "", err
	}

	if versionCheck.Version == nil {
		return legacyVersion, nil
	}

	return fmt.Sprint(versionCheck.Version), nil
}

func keys(entries map[string]string) []string {
	out := make([]string, 0, len(entries))
	for k := range entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return strings.Join([]string{prefix, key}, ".")
}
