// Package logging builds the client's debug logger. The TUI owns the
// terminal, so nothing may ever write to stdout or stderr; when debugging is
// off the logger is a no-op, and when it is on everything goes to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DefaultPath returns ~/.mediview/debug.log.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("logging.DefaultPath: %w", err)
	}
	return filepath.Join(home, ".mediview", "debug.log"), nil
}

// New returns a file-backed debug logger when enabled, zap.NewNop otherwise.
func New(enabled bool, path string) (*zap.Logger, error) {
	if !enabled {
		return zap.NewNop(), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("logging.New: create dir: %w", err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging.New: %w", err)
	}
	return log, nil
}
