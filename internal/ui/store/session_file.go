package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"chargemap/internal/models"
)

// Session is the persisted client-side credential: the bearer token plus the
// user it was issued to.
type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// SessionFile persists the session to a local JSON file, the CLI analog of
// browser local storage.
type SessionFile struct {
	path string
}

// NewSessionFile returns a store at the given path. An empty path falls back
// to chargemap/session.json under the user config directory.
func NewSessionFile(path string) *SessionFile {
	if path == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			path = filepath.Join(dir, "chargemap", "session.json")
		} else {
			path = "chargemap-session.json"
		}
	}
	return &SessionFile{path: path}
}

// Load reads the persisted session. A missing file returns (nil, nil);
// malformed content is an error the caller discards, never propagates.
func (f *SessionFile) Load() (*Session, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	if session.Token == "" {
		return nil, errors.New("session: missing token")
	}
	return &session, nil
}

// Save writes the session, creating parent directories as needed.
func (f *SessionFile) Save(session *Session) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o600)
}

// Clear removes the persisted session. A missing file is not an error.
func (f *SessionFile) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
