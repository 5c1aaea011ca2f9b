package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"civictrack/models"

	"gopkg.in/yaml.v3"
)

// Session is the credential of a logged-in user. It is passed explicitly to
// every authenticated call.
type Session struct {
	Token  string      `yaml:"token"`
	Role   models.Role `yaml:"role"`
	UserID string      `yaml:"user_id,omitempty"`
	Login  string      `yaml:"login,omitempty"`
}

// LoggedIn reports whether the session carries a token
func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != ""
}

// SessionStore persists a Session as YAML. Load on start, Save after login,
// Clear on logout.
type SessionStore struct {
	path string
}

// NewSessionStore creates a store backed by the file at path
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Path returns the backing file path
func (s *SessionStore) Path() string {
	return s.path
}

// Load reads the stored session. A missing file yields an empty session.
func (s *SessionStore) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var sess Session
	if err := yaml.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", s.path, err)
	}
	return &sess, nil
}

// Save writes the session, readable by the current user only
func (s *SessionStore) Save(sess *Session) error {
	data, err := yaml.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the stored session. Clearing an absent session is not an error.
func (s *SessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
