package config

import (
	sharedConfig "github.com/MV-Clouds/quickform-payments/internal/shared/config"
)

// Section type aliases so consumers of this package's Config can name the
// section types without a second config import.
type (
	ServerConfig   = sharedConfig.ServerConfig
	DatabaseConfig = sharedConfig.DatabaseConfig
	LoggerConfig   = sharedConfig.LoggerConfig
	RedisConfig    = sharedConfig.RedisConfig
	ProviderConfig = sharedConfig.ProviderConfig
)
