package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pagesmith"
	"github.com/google/uuid"
)

// UserStore persists the local user's identifier in a file.
type UserStore struct {
	path string
}

// NewUserStore creates a UserStore backed by path.
func NewUserStore(path string) *UserStore {
	return &UserStore{path: path}
}

// UserID returns the stored identifier, generating and saving a new one on
// first use.
func (s *UserStore) UserID() (string, error) {
	data, err := os.ReadFile(s.path)
	switch {
	case err == nil:
		id := strings.TrimSpace(string(data))
		if _, perr := uuid.Parse(id); perr != nil {
			return "", pagesmith.Errorf(pagesmith.EINVALID, "malformed user id in %s", s.path)
		}
		return id, nil
	case !errors.Is(err, os.ErrNotExist):
		return "", err
	}

	id := uuid.New().String()
	if err := s.SetUserID(id); err != nil {
		return "", err
	}
	return id, nil
}

// SetUserID overwrites the stored identifier, e.g. when restoring another
// user's history.
func (s *UserStore) SetUserID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return pagesmith.Errorf(pagesmith.EINVALID, "user id must be a UUID: %q", id)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(id+"\n"), 0600)
}
