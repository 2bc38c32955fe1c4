package domain

// ConfigProvider provides configuration paths.
type ConfigProvider interface {
	GetConfigDir() (string, error)
	GetConfigPath() (string, error)
	GetCredentialStorePath() (string, error)
	GetLegacyStorePath() (string, error)
}
