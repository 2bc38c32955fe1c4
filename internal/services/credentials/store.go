// Package credentials persists access tokens between runs.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"secretariat/internal/domain"
	apperrors "secretariat/internal/errors"
	"secretariat/internal/migrations"
)

const (
	dirPermissions  = 0o700 // Owner-only access for security
	filePermissions = 0o600 // Read/write owner only
	storeVersion    = migrations.CurrentVersion
)

// TokenKey is the store key under which the GitHub token is kept.
const TokenKey = "github.token"

// document is the on-disk layout of the credential store.
type document struct {
	Version string            `yaml:"version"`
	Entries map[string]string `yaml:"entries"`
}

// LegacyMigrator converts a token file from an earlier release into entries.
type LegacyMigrator interface {
	Migrate(ctx context.Context, data []byte) (map[string]string, bool, error)
}

// FileStore is a YAML backed key/value store for secrets.
type FileStore struct {
	fs     domain.FileSystemAdapter
	path   string
	logger *slog.Logger

	legacyPath string
	migrator   LegacyMigrator

	mu     sync.Mutex
	loaded bool
	doc    document
}

// NewFileStore creates a store backed by the file at path. The file is read
// lazily on first access.
func NewFileStore(fs domain.FileSystemAdapter, path string, logger *slog.Logger) *FileStore {
	return &FileStore{
		fs:     fs,
		path:   path,
		logger: logger,
		doc:    document{Version: storeVersion, Entries: map[string]string{}},
	}
}

// WithLegacyImport makes the store import path through migrator the first
// time it is read and no store file exists yet.
func (s *FileStore) WithLegacyImport(path string, migrator LegacyMigrator) *FileStore {
	s.legacyPath = path
	s.migrator = migrator
	return s
}

// Get returns the value stored under key.
func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return "", false, err
	}

	value, ok := s.doc.Entries[key]
	if !ok || value == "" {
		s.logger.DebugContext(ctx, "Credential not found in store", "key", key)
		return "", false, nil
	}

	s.logger.DebugContext(ctx, "Credential found in store", "key", key)
	return value, true, nil
}

// Set stores value under key and writes the store to disk.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return err
	}

	previous, existed := s.doc.Entries[key]
	s.doc.Entries[key] = value

	if err := s.save(ctx); err != nil {
		// Rollback
		if existed {
			s.doc.Entries[key] = previous
		} else {
			delete(s.doc.Entries, key)
		}
		return err
	}

	s.logger.DebugContext(ctx, "Credential saved", "key", key, "path", s.path)
	return nil
}

func (s *FileStore) load(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.DebugContext(ctx, "Credential store does not exist", "path", s.path)
			s.loaded = true
			s.importLegacy(ctx)
			return nil
		}
		return apperrors.NewFilesystemError("read", s.path, err)
	}

	var doc document
	if unmarshalErr := yaml.Unmarshal(data, &doc); unmarshalErr != nil {
		return fmt.Errorf("failed to unmarshal credential store %s: %w", s.path, unmarshalErr)
	}
	if doc.Entries == nil {
		doc.Entries = map[string]string{}
	}
	if doc.Version == "" {
		doc.Version = storeVersion
	}

	s.doc = doc
	s.loaded = true
	return nil
}

func (s *FileStore) save(ctx context.Context) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), dirPermissions); err != nil {
		return apperrors.NewFilesystemError("create directory", filepath.Dir(s.path), err)
	}

	data, err := yaml.Marshal(s.doc)
	if err != nil {
		return fmt.Errorf("failed to marshal credential store: %w", err)
	}

	if writeErr := s.fs.WriteFile(s.path, data, filePermissions); writeErr != nil {
		return apperrors.NewFilesystemError("write", s.path, writeErr)
	}

	s.logger.DebugContext(ctx, "Credential store written", "path", s.path)
	return nil
}

// importLegacy copies entries from the legacy file into a new store file.
// Failures are logged and leave the store empty.
func (s *FileStore) importLegacy(ctx context.Context) {
	if s.legacyPath == "" || s.migrator == nil {
		return
	}

	data, err := s.fs.ReadFile(s.legacyPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.WarnContext(ctx, "Failed to read legacy credentials", "path", s.legacyPath, "error", err)
		}
		return
	}

	entries, migrated, err := s.migrator.Migrate(ctx, data)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to migrate legacy credentials", "path", s.legacyPath, "error", err)
		return
	}
	if !migrated || len(entries) == 0 {
		return
	}

	s.doc.Entries = entries
	if err := s.save(ctx); err != nil {
		s.logger.WarnContext(ctx, "Failed to persist migrated credentials", "path", s.path, "error", err)
		s.doc.Entries = map[string]string{}
		return
	}
	s.logger.InfoContext(ctx, "Imported legacy credentials", "from", s.legacyPath, "to", s.path)
}

var _ domain.CredentialStore = (*FileStore)(nil)
