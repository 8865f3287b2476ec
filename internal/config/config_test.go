package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoffindustries/rolexhound/internal/errors"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Environment: "development",
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		Watch: WatchConfig{
			Path:       "/some/path",
			BufferSize: 4096,
		},
		Notify: NotifyConfig{
			AppName: AppName,
			Icon:    "dialog-information",
			Urgency: "critical",
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	err := validConfig().Validate()
	assert.NoError(t, err)
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"production", true},
		{"staging", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"trace", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_AllUrgencies(t *testing.T) {
	tests := []struct {
		urgency string
		valid   bool
	}{
		{"low", true},
		{"normal", true},
		{"critical", true},
		{"urgent", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.urgency, func(t *testing.T) {
			cfg := validConfig()
			cfg.Notify.Urgency = tt.urgency

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_BufferSize(t *testing.T) {
	cfg := validConfig()
	cfg.Watch.BufferSize = 16

	assert.Error(t, cfg.Validate())
}

func TestLoadConfig_MissingPathArgument(t *testing.T) {
	var out bytes.Buffer

	cfg, err := LoadConfig([]string{}, &out)

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, errors.ErrUsage)
	assert.Contains(t, out.String(), "USAGE")
}

func TestLoadConfig_Defaults(t *testing.T) {
	var out bytes.Buffer

	cfg, err := LoadConfig([]string{"/tmp/watched.txt"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "/tmp/watched.txt", cfg.Watch.Path)
	assert.Equal(t, 4096, cfg.Watch.BufferSize)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, AppName, cfg.Notify.AppName)
	assert.Equal(t, "dialog-information", cfg.Notify.Icon)
	assert.Equal(t, "critical", cfg.Notify.Urgency)
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	var out bytes.Buffer

	cfg, err := LoadConfig([]string{
		"-env", "production",
		"-log-level", "debug",
		"-icon", "dialog-warning",
		"-urgency", "normal",
		"-buffer-size", "8192",
		"/tmp/watched.txt",
	}, &out)

	require.NoError(t, err)
	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "dialog-warning", cfg.Notify.Icon)
	assert.Equal(t, "normal", cfg.Notify.Urgency)
	assert.Equal(t, 8192, cfg.Watch.BufferSize)
}

func TestLoadConfig_RelativePathExpanded(t *testing.T) {
	var out bytes.Buffer

	cfg, err := LoadConfig([]string{"some/relative/path"}, &out)

	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(cfg.Watch.Path))
	assert.True(t, strings.HasSuffix(cfg.Watch.Path, filepath.Join("some", "relative", "path")))
}

func TestExpandPath_Tilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := expandPath("~/watched.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "watched.txt"), expanded)
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("ROLEXHOUND_TEST_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "ROLEXHOUND_TEST_KEY", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "ROLEXHOUND_TEST_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("", "ROLEXHOUND_TEST_MISSING", "default"))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nROLEXHOUND_TEST_ENVFILE=hello\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Cleanup(func() { os.Unsetenv("ROLEXHOUND_TEST_ENVFILE") })

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "hello", os.Getenv("ROLEXHOUND_TEST_ENVFILE"))
}
