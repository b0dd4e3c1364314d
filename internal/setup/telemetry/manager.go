package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/threadguard/threadguard/internal/setup/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Manager handles logger construction and log session directories.
// Each process run gets its own timestamped session directory; old
// sessions beyond the configured limit are removed at startup.
type Manager struct {
	debug      *config.Debug
	sessionDir string
	level      zapcore.Level
}

// NewManager creates a log manager for the given debug configuration.
func NewManager(debug *config.Debug) (*Manager, error) {
	level, err := zapcore.ParseLevel(debug.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", debug.LogLevel, err)
	}

	m := &Manager{
		debug: debug,
		level: level,
	}

	if debug.LogDir != "" {
		if err := m.setupSessionDir(); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// GetLoggers returns the main application logger and the database logger.
// Both share the console core; with file logging enabled each also gets
// its own file in the session directory.
func (m *Manager) GetLoggers() (*zap.Logger, *zap.Logger, error) {
	mainLogger, err := m.initLogger("main.log")
	if err != nil {
		return nil, nil, err
	}

	dbLogger, err := m.initLogger("database.log")
	if err != nil {
		return nil, nil, err
	}

	return mainLogger, dbLogger, nil
}

// GetWorkerLogger returns a logger writing to its own file in the
// session directory, falling back to a no-op logger on failure.
func (m *Manager) GetWorkerLogger(name string) *zap.Logger {
	logger, err := m.initLogger(name + ".log")
	if err != nil {
		return zap.NewNop()
	}

	return logger
}

// SessionDir returns the current session directory, empty when file
// logging is disabled.
func (m *Manager) SessionDir() string {
	return m.sessionDir
}

// initLogger builds a logger writing to the console and optionally to a
// file in the session directory.
func (m *Manager) initLogger(filename string) (*zap.Logger, error) {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.Lock(os.Stderr),
			m.level,
		),
	}

	if m.sessionDir != "" {
		logFile, err := os.OpenFile(
			filepath.Join(m.sessionDir, filename),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}

		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(logFile),
			m.level,
		))
	}

	return zap.New(
		zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}

// setupSessionDir creates the session directory and prunes old sessions.
func (m *Manager) setupSessionDir() error {
	if err := os.MkdirAll(m.debug.LogDir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	m.sessionDir = filepath.Join(m.debug.LogDir, time.Now().Format("20060102_150405"))
	if err := os.MkdirAll(m.sessionDir, 0o755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	return m.pruneOldSessions()
}

// pruneOldSessions keeps only the most recent session directories.
func (m *Manager) pruneOldSessions() error {
	if m.debug.MaxLogsToKeep <= 0 {
		return nil
	}

	entries, err := os.ReadDir(m.debug.LogDir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	var sessions []string
	for _, entry := range entries {
		if entry.IsDir() {
			sessions = append(sessions, entry.Name())
		}
	}

	if len(sessions) <= m.debug.MaxLogsToKeep {
		return nil
	}

	// Session names sort chronologically
	sort.Strings(sessions)

	for _, name := range sessions[:len(sessions)-m.debug.MaxLogsToKeep] {
		if err := os.RemoveAll(filepath.Join(m.debug.LogDir, name)); err != nil {
			return fmt.Errorf("failed to remove old session %s: %w", name, err)
		}
	}

	return nil
}
