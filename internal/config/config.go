// Package config provides application configuration management with support for command-line flags, environment variables, and .env files.
package config

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hoffindustries/rolexhound/internal/errors"
)

// AppName is the program name used for usage output and notifications.
const AppName = "rolexhound"

// Config holds the application configuration.
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	Watch  WatchConfig
	Notify NotifyConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// WatchConfig holds watch target configuration.
type WatchConfig struct {
	// Path is the single filesystem path under observation.
	Path string
	// BufferSize is the read buffer for raw event records (default: 4096).
	BufferSize int
}

// NotifyConfig holds desktop notification configuration.
type NotifyConfig struct {
	// AppName is reported to the notification service (default: rolexhound).
	AppName string
	// Icon is the icon hint sent with every notification (default: dialog-information).
	Icon string
	// Urgency is the notification urgency hint: low, normal, or critical (default: critical).
	Urgency string
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
//
// The single positional argument is the path to watch; it is required.
func LoadConfig(args []string, errOut io.Writer) (*Config, error) {
	fs := flag.NewFlagSet(AppName, flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		fmt.Fprintf(errOut, "USAGE: %s [flags] PATH\n", AppName)
		fs.PrintDefaults()
	}

	env := fs.String("env", "", "Environment (development, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	bufferSize := fs.String("buffer-size", "", "Event read buffer size in bytes (default: 4096)")
	appName := fs.String("app-name", "", "Application name reported to the notification service")
	icon := fs.String("icon", "", "Notification icon hint (default: dialog-information)")
	urgency := fs.String("urgency", "", "Notification urgency: low, normal, critical (default: critical)")
	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, errors.ErrUsage.WithCause(err)
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return nil, errors.Usage("missing watch path argument")
	}

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	// Build config with proper precedence.
	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Watch: WatchConfig{
			Path:       fs.Arg(0),
			BufferSize: getIntConfigValue(*bufferSize, "WATCH_BUFFER_SIZE", 4096),
		},
		Notify: NotifyConfig{
			AppName: getConfigValue(*appName, "NOTIFY_APP_NAME", AppName),
			Icon:    getConfigValue(*icon, "NOTIFY_ICON", "dialog-information"),
			Urgency: getConfigValue(*urgency, "NOTIFY_URGENCY", "critical"),
		},
	}

	// Expand the watch path.
	if err := cfg.expandWatchPath(); err != nil {
		return nil, errors.Wrap(err, errors.CodeUsage, "invalid watch path")
	}

	// Validate configuration.
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CodeUsage, "config validation failed")
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Watch.Path == "" {
		return fmt.Errorf("watch path cannot be empty")
	}

	if c.Watch.BufferSize < 256 {
		return fmt.Errorf("buffer size %d is too small (minimum 256)", c.Watch.BufferSize)
	}

	validUrgencies := map[string]bool{
		"low":      true,
		"normal":   true,
		"critical": true,
	}
	if !validUrgencies[strings.ToLower(c.Notify.Urgency)] {
		return fmt.Errorf("invalid urgency: %s (must be low, normal, or critical)", c.Notify.Urgency)
	}

	return nil
}

// expandWatchPath expands ~ and makes the watch path absolute.
func (c *Config) expandWatchPath() error {
	expanded, err := expandPath(c.Watch.Path)
	if err != nil {
		return err
	}
	c.Watch.Path = expanded
	return nil
}

// expandPath expands ~ and makes the path absolute.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=value.
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present.
		value = strings.Trim(value, `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
