package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"techreads/pkg/models"
)

// FileStore keeps the CLI's session (token + minimal profile) in a JSON
// file under the user's home directory. Both fields are wiped on
// logout.
type FileStore struct {
	Path string
}

func DefaultFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./.techreads-session.json"
	}
	return filepath.Join(home, ".techreads", "session.json")
}

func (s FileStore) Save(sess models.Session) error {
	if strings.TrimSpace(sess.Token) == "" {
		return errors.New("empty token")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0o600)
}

func (s FileStore) Load() (*models.Session, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session file: %w", err)
	}
	sess.Token = strings.TrimSpace(sess.Token)
	if sess.Token == "" {
		return nil, errors.New("session file has no token")
	}
	return &sess, nil
}

func (s FileStore) Clear() error {
	if err := os.Remove(s.Path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}
