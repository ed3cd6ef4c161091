package config

import (
	"fmt"
	"net/url"
	"strings"
)

// CompressionLevels lists the accepted upload.default_compress values
var CompressionLevels = []string{"high", "fine", "normal", "low"}

// Validate validates the configuration and returns an error if invalid
func Validate(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := validateLogConfig(&config.Log); err != nil {
		return fmt.Errorf("log config validation failed: %w", err)
	}

	if err := validateUIConfig(&config.UI); err != nil {
		return fmt.Errorf("ui config validation failed: %w", err)
	}

	if err := validateUploadConfig(&config.Upload); err != nil {
		return fmt.Errorf("upload config validation failed: %w", err)
	}

	return nil
}

// validateServerConfig validates the server connection settings
func validateServerConfig(config *ServerConfig) error {
	raw := strings.TrimSpace(config.BaseURL)
	if raw == "" {
		return fmt.Errorf("base_url is required")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must use http or https, got: %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("base_url has no host: %q", raw)
	}

	if config.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got: %s", config.Timeout)
	}

	return nil
}

// validateLogConfig validates log configuration
func validateLogConfig(config *LogConfig) error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
		"panic": true,
	}

	level := strings.ToLower(config.Level)
	if !validLevels[level] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error, fatal, panic)", config.Level)
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
	}

	format := strings.ToLower(config.Format)
	if !validFormats[format] {
		return fmt.Errorf("invalid log format: %s (valid: text, json)", config.Format)
	}

	return nil
}

func validateUIConfig(config *UIConfig) error {
	if config.NotificationTTL <= 0 {
		return fmt.Errorf("notification_ttl must be positive, got: %s", config.NotificationTTL)
	}
	return nil
}

// validateUploadConfig validates upload configuration
func validateUploadConfig(config *UploadConfig) error {
	if config.DefaultCompress == "" {
		return nil
	}
	if !IsCompressionLevel(config.DefaultCompress) {
		return fmt.Errorf("invalid default_compress: %s (valid: %s)",
			config.DefaultCompress, strings.Join(CompressionLevels, ", "))
	}
	return nil
}

// IsCompressionLevel reports whether level is a known compression level
func IsCompressionLevel(level string) bool {
	for _, l := range CompressionLevels {
		if l == level {
			return true
		}
	}
	return false
}
