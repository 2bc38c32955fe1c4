package config

import (
	"fmt"
	"os"
	"path/filepath"

	"secretariat/internal/domain"
)

const (
	appDirName          = "secretariat"
	configFileName      = "config.yaml"
	credentialsFileName = "credentials.yaml"

	// Token file written by earlier releases through the configstore layout.
	legacyStoreDir  = "configstore"
	legacyStoreFile = "secretariat.json"
)

// Provider provides configuration paths.
type Provider struct {
	fs     domain.FileSystemAdapter
	getenv func(string) string
}

// NewProvider creates a new configuration provider.
func NewProvider(fs domain.FileSystemAdapter) *Provider {
	return &Provider{
		fs:     fs,
		getenv: os.Getenv,
	}
}

// GetConfigDir returns the secretariat configuration directory.
func (p *Provider) GetConfigDir() (string, error) {
	homeDir, err := p.fs.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", appDirName), nil
}

// GetConfigPath returns the path to the secretariat configuration file.
func (p *Provider) GetConfigPath() (string, error) {
	dir, err := p.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// GetCredentialStorePath returns the default path of the credential store.
func (p *Provider) GetCredentialStorePath() (string, error) {
	dir, err := p.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, credentialsFileName), nil
}

// GetLegacyStorePath returns the token file of earlier releases. It honours
// XDG_CONFIG_HOME on every platform.
func (p *Provider) GetLegacyStorePath() (string, error) {
	if xdg := p.getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, legacyStoreDir, legacyStoreFile), nil
	}
	homeDir, err := p.fs.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", legacyStoreDir, legacyStoreFile), nil
}

var _ domain.ConfigProvider = (*Provider)(nil)
