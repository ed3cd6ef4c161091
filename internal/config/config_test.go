package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.Server.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.Server.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 3*time.Second, cfg.UI.NotificationTTL)
	assert.True(t, cfg.Upload.AutoDetectContentType)
	assert.Empty(t, cfg.Upload.DefaultCompress)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[server]
base_url = "http://storage.local:8080"
timeout = "15s"

[log]
level = "debug"
format = "json"

[ui]
notification_ttl = "5s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://storage.local:8080", cfg.Server.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 5*time.Second, cfg.UI.NotificationTTL)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("S3CLONE_SERVER_URL", "https://objects.example.com")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://objects.example.com", cfg.Server.BaseURL)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"loud\"\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))
	assert.Equal(t, 3*time.Second, cfg.UI.NotificationTTL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"empty base url", func(c *Config) { c.Server.BaseURL = "  " }, "base_url is required"},
		{"bad scheme", func(c *Config) { c.Server.BaseURL = "ftp://host" }, "http or https"},
		{"missing host", func(c *Config) { c.Server.BaseURL = "http://" }, "no host"},
		{"negative timeout", func(c *Config) { c.Server.Timeout = -time.Second }, "timeout"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"zero ttl", func(c *Config) { c.UI.NotificationTTL = 0 }, "notification_ttl"},
		{"bad compress", func(c *Config) { c.Upload.DefaultCompress = "ultra" }, "default_compress"},
		{"good compress", func(c *Config) { c.Upload.DefaultCompress = "fine" }, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := Validate(cfg)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
