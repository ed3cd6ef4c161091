package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the complete application configuration
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	UI     UIConfig     `mapstructure:"ui"`
	Upload UploadConfig `mapstructure:"upload"`
}

// ServerConfig holds the object storage server connection settings
type ServerConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// UIConfig holds interactive client configuration
type UIConfig struct {
	NotificationTTL time.Duration `mapstructure:"notification_ttl"`
}

// UploadConfig holds upload-specific configuration
type UploadConfig struct {
	AutoDetectContentType bool   `mapstructure:"auto_detect_content_type"`
	DefaultCompress       string `mapstructure:"default_compress"`
}

// Load loads configuration from multiple sources with priority:
// 1. Command line flags (highest, applied by the caller)
// 2. Environment variables
// 3. Configuration file
// 4. Defaults (lowest)
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("S3CLONE")
	v.AutomaticEnv()

	v.BindEnv("server.base_url", "S3CLONE_SERVER_URL")
	v.BindEnv("server.timeout", "S3CLONE_SERVER_TIMEOUT")
	v.BindEnv("log.level", "S3CLONE_LOG_LEVEL")
	v.BindEnv("log.format", "S3CLONE_LOG_FORMAT")
	v.BindEnv("log.file", "S3CLONE_LOG_FILE")
	v.BindEnv("ui.notification_ttl", "S3CLONE_UI_NOTIFICATION_TTL")
	v.BindEnv("upload.auto_detect_content_type", "S3CLONE_UPLOAD_AUTO_DETECT_CONTENT_TYPE")
	v.BindEnv("upload.default_compress", "S3CLONE_UPLOAD_DEFAULT_COMPRESS")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")

		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.s3clone-cli")
		v.AddConfigPath("/etc/s3clone-cli/")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is not an error - defaults and env vars apply
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// Default returns a configuration populated only with defaults
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	// Defaults are static and always decode.
	_ = v.Unmarshal(&config)
	return &config
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.base_url", "http://localhost:3000")
	v.SetDefault("server.timeout", "0s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", filepath.Join(os.TempDir(), "s3clone-cli", "app.log"))

	v.SetDefault("ui.notification_ttl", "3s")

	v.SetDefault("upload.auto_detect_content_type", true)
	v.SetDefault("upload.default_compress", "")
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./config.toml"
	}
	return filepath.Join(homeDir, ".s3clone-cli", "config.toml")
}
