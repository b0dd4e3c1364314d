package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	ErrConfigFileNotFound    = errors.New("could not find config file in any config path")
	ErrConfigVersionMissing  = errors.New("config file is missing version field")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
)

// Current version of the config file.
const (
	CurrentCommonVersion = 1
	CurrentEngineVersion = 1
)

// Config represents the entire application configuration.
type Config struct {
	Common CommonConfig
	Engine EngineConfig
}

// CommonConfig contains configuration shared between the engine and workers.
type CommonConfig struct {
	// Version of the common config.
	Version    int        `koanf:"version"`
	Debug      Debug      `koanf:"debug"`
	PostgreSQL PostgreSQL `koanf:"postgresql"`
	Redis      Redis      `koanf:"redis"`
}

// EngineConfig contains decision engine specific configuration.
// Every threshold here is carried into components as an immutable
// snapshot; changing the file takes effect on restart only.
type EngineConfig struct {
	// Version of the engine config.
	Version   int       `koanf:"version"`
	RateLimit RateLimit `koanf:"rate_limit"`
	VoteAbuse VoteAbuse `koanf:"vote_abuse"`
	Reports   Reports   `koanf:"reports"`
	Escalate  Escalate  `koanf:"escalate"`
	Dispatch  Dispatch  `koanf:"dispatch"`
	Worker    Worker    `koanf:"worker"`
}

// Debug contains logging and debugging configuration.
type Debug struct {
	// Log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
	// Directory for log files (empty disables file logging).
	LogDir string `koanf:"log_dir"`
	// Maximum log files to keep.
	MaxLogsToKeep int `koanf:"max_logs_to_keep"`
}

// PostgreSQL contains database connection configuration.
type PostgreSQL struct {
	// Database hostname.
	Host string `koanf:"host"`
	// Database port.
	Port int `koanf:"port"`
	// Database username.
	User string `koanf:"user"`
	// Database password.
	Password string `koanf:"password"`
	// Database name.
	DBName string `koanf:"db_name"`
	// Maximum open connections.
	MaxOpenConns int `koanf:"max_open_conns"`
	// Maximum idle connections.
	MaxIdleConns int `koanf:"max_idle_conns"`
	// Connection lifetime in minutes.
	MaxLifetime int `koanf:"max_lifetime"`
	// Idle timeout in minutes.
	MaxIdleTime int `koanf:"max_idle_time"`
}

// Redis contains Redis connection configuration.
type Redis struct {
	// Redis hostname.
	Host string `koanf:"host"`
	// Redis port.
	Port int `koanf:"port"`
	// Redis username.
	Username string `koanf:"username"`
	// Redis password.
	Password string `koanf:"password"`
}

// RateLimit contains aligned-window rate limit configuration.
type RateLimit struct {
	// Window size in minutes for aligned rate windows.
	WindowMinutes int `koanf:"window_minutes"`
	// Maximum comments per window.
	Comment int64 `koanf:"comment"`
	// Maximum votes per window.
	Vote int64 `koanf:"vote"`
	// Maximum reports per window.
	Report int64 `koanf:"report"`
	// Maximum edits per window.
	Edit int64 `koanf:"edit"`
}

// VoteAbuse contains vote abuse detection configuration.
type VoteAbuse struct {
	// Votes in the rolling window before rapid voting is signaled.
	RapidThreshold int64 `koanf:"rapid_threshold"`
	// Rolling window size in minutes for rapid voting.
	RapidWindowMinutes int `koanf:"rapid_window_minutes"`
	// Distinct correlated voters on one comment before brigading is signaled.
	// Zero disables brigading detection.
	BrigadeVoters int64 `koanf:"brigade_voters"`
	// Trailing window size in minutes for brigading.
	BrigadeWindowMinutes int `koanf:"brigade_window_minutes"`
	// Minimum signal severity that triggers a voting restriction.
	ActionSeverity int `koanf:"action_severity"`
	// Voting restriction duration in hours.
	RestrictionHours int `koanf:"restriction_hours"`
}

// Reports contains report accumulation thresholds.
type Reports struct {
	// Distinct non-dismissed reports before the author is warned.
	AutoWarnThreshold int `koanf:"auto_warn_threshold"`
	// Distinct non-dismissed reports before the author is muted.
	AutoMuteThreshold int `koanf:"auto_mute_threshold"`
	// Distinct non-dismissed reports before the author is banned.
	AutoBanThreshold int `koanf:"auto_ban_threshold"`
}

// Escalate contains escalation router configuration.
type Escalate struct {
	// Debounce window in seconds for duplicate escalation submissions.
	DebounceSeconds int `koanf:"debounce_seconds"`
}

// Dispatch contains action dispatcher configuration.
type Dispatch struct {
	// Dedup window in seconds for identical dispatch requests.
	DedupeSeconds int `koanf:"dedupe_seconds"`
	// Default mute duration in hours when none is given.
	MuteHours int `koanf:"mute_hours"`
	// Attempts for the audit write after an applied state change.
	AuditAttempts int `koanf:"audit_attempts"`
}

// Worker contains background worker configuration.
type Worker struct {
	// Minutes between sweep runs.
	SweepIntervalMinutes int `koanf:"sweep_interval_minutes"`
	// Days abuse signals are retained before the sweep removes them.
	SignalRetentionDays int `koanf:"signal_retention_days"`
}

// LoadConfig loads the configuration from the config files.
func LoadConfig() (*Config, string, error) {
	k := koanf.New(".")

	// Get user's home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get home directory: %w", err)
	}

	// List search paths
	configPaths := []string{
		".threadguard",
		homeDir + "/.threadguard/config",
		"/etc/threadguard/config",
		"/app/config",
		"config",
		".",
	}

	// Load all config files
	var usedConfigPath string

	configFiles := []string{"common", "engine"}
	for _, configName := range configFiles {
		configLoaded := false

		for _, path := range configPaths {
			configPath := fmt.Sprintf("%s/%s.toml", path, configName)
			if err := k.Load(file.Provider(configPath), toml.Parser()); err == nil {
				configLoaded = true

				if usedConfigPath == "" {
					usedConfigPath = path
				}

				break
			}
		}

		if !configLoaded {
			return nil, "", fmt.Errorf("%w: %s.toml", ErrConfigFileNotFound, configName)
		}
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Check versions for each config file
	if err := checkConfigVersion("common", config.Common.Version, CurrentCommonVersion); err != nil {
		return nil, "", err
	}

	if err := checkConfigVersion("engine", config.Engine.Version, CurrentEngineVersion); err != nil {
		return nil, "", err
	}

	return &config, usedConfigPath, nil
}

// checkConfigVersion checks if the config file version is correct.
func checkConfigVersion(name string, current, expected int) error {
	if current == 0 {
		return fmt.Errorf("%w: %s.toml", ErrConfigVersionMissing, name)
	}

	if current != expected {
		return fmt.Errorf("%w: %s.toml (got: %d, expected: %d)",
			ErrConfigVersionMismatch, name, current, expected)
	}

	return nil
}
