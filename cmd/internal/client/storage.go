package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// IdentityFile persists the active session between runs, the desk equivalent
// of the browser's localStorage entry. It holds at most one record.
type IdentityFile struct {
	path string
}

func NewIdentityFile(dir string) *IdentityFile {
	return &IdentityFile{path: filepath.Join(dir, "session.json")}
}

// Load returns the persisted credentials, or (nil, nil) when none exist.
func (f *IdentityFile) Load() (*Credentials, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// Save writes the credentials via a temp file and rename, so a crash mid-write
// never leaves a torn session record behind.
func (f *IdentityFile) Save(creds *Credentials) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}

	raw, err := json.Marshal(creds)
	if err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Clear removes the persisted record. Clearing an absent record is fine.
func (f *IdentityFile) Clear() error {
	err := os.Remove(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
