package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mediview-health/mediview/pkg/domain"
)

// FileStore persists the session as a small JSON file under the user's home
// directory, the terminal-client counterpart of browser local storage.
type FileStore struct {
	path string
	log  *zap.Logger
}

// NewFileStore creates a store backed by the file at path. A nil logger is
// replaced with a no-op logger.
func NewFileStore(path string, log *zap.Logger) *FileStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileStore{path: path, log: log}
}

// DefaultPath returns ~/.mediview/session.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("session.DefaultPath: %w", err)
	}
	return filepath.Join(home, ".mediview", "session.json"), nil
}

// Save writes token and role in one atomic step: the payload is staged next
// to the target and renamed over it, so a crash mid-write never leaves a
// partial session behind.
func (s *FileStore) Save(token string, role domain.Role) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session.Save: create dir: %w", err)
	}
	data, err := json.Marshal(Session{Token: token, Role: role})
	if err != nil {
		return fmt.Errorf("session.Save: marshal: %w", err)
	}
	stage := s.path + ".tmp"
	if err := os.WriteFile(stage, data, 0o600); err != nil {
		return fmt.Errorf("session.Save: write: %w", err)
	}
	if err := os.Rename(stage, s.path); err != nil {
		os.Remove(stage) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("session.Save: rename: %w", err)
	}
	s.log.Debug("session saved", zap.String("role", string(role)))
	return nil
}

// Clear removes the session file. A missing file is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("session.Clear: %w", err)
	}
	s.log.Debug("session cleared")
	return nil
}

// Read loads the persisted session. Missing, unreadable, or malformed files
// all report absent — the conservative outcome is a forced re-login, never an
// undefined half-session.
func (s *FileStore) Read() (Session, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Session{}, false
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.log.Debug("session file unreadable, treating as absent", zap.Error(err))
		return Session{}, false
	}
	if sess.Token == "" {
		return Session{}, false
	}
	sess.Role = domain.ParseRole(string(sess.Role))
	return sess, true
}
