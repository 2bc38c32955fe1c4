package config_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secretariat/internal/mocks"
	"secretariat/internal/services/config"
)

func TestProvider_Paths(t *testing.T) {
	mockFS := mocks.NewMockFileSystemAdapter(t)
	mockFS.On("UserHomeDir").Return("/home/octocat", nil)

	provider := config.NewProvider(mockFS)

	dir, err := provider.GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/home/octocat/.config/secretariat", dir)

	path, err := provider.GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/home/octocat/.config/secretariat/config.yaml", path)

	store, err := provider.GetCredentialStorePath()
	require.NoError(t, err)
	assert.Equal(t, "/home/octocat/.config/secretariat/credentials.yaml", store)
}

func TestProvider_HomeDirError(t *testing.T) {
	mockFS := mocks.NewMockFileSystemAdapter(t)
	mockFS.On("UserHomeDir").Return("", errors.New("$HOME is not defined"))

	_, err := config.NewProvider(mockFS).GetCredentialStorePath()

	require.Error(t, err)
	assert.Equal(t, "failed to get home directory: $HOME is not defined", err.Error())
}

func TestProvider_LegacyStorePath(t *testing.T) {
	t.Run("home", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		mockFS := mocks.NewMockFileSystemAdapter(t)
		mockFS.On("UserHomeDir").Return("/home/octocat", nil)

		path, err := config.NewProvider(mockFS).GetLegacyStorePath()

		require.NoError(t, err)
		assert.Equal(t, "/home/octocat/.config/configstore/secretariat.json", path)
	})

	t.Run("xdg", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		mockFS := mocks.NewMockFileSystemAdapter(t)

		path, err := config.NewProvider(mockFS).GetLegacyStorePath()

		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg/configstore/secretariat.json", path)
	})
}
