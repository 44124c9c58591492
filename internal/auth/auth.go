package auth

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ErrNotAuthenticated is returned when no credentials are stored.
var ErrNotAuthenticated = errors.New("not authenticated: run `packpal login` first")

// CredentialSource provides the bearer token attached to API requests.
// It is passed explicitly to anything that talks to the backend so tests
// can substitute fake credentials.
type CredentialSource interface {
	Token() (string, error)
}

// StaticToken is a CredentialSource backed by a fixed token.
type StaticToken string

// Token implements CredentialSource.
func (t StaticToken) Token() (string, error) {
	if t == "" {
		return "", ErrNotAuthenticated
	}
	return string(t), nil
}

// Credentials as persisted on disk.
type Credentials struct {
	Token string `json:"token"`
	Email string `json:"email,omitempty"`
}

// FileStore persists credentials to a JSON file.
type FileStore struct {
	path string
}

// NewFileStore returns a credential store backed by the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Token implements CredentialSource.
func (s *FileStore) Token() (string, error) {
	credentials, err := s.Load()
	if err != nil {
		return "", err
	}
	return credentials.Token, nil
}

// Load reads the stored credentials.
func (s *FileStore) Load() (*Credentials, error) {
	bytes, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotAuthenticated
		}
		return nil, errors.Wrap(err, "reading credentials")
	}
	credentials := &Credentials{}
	if err := json.Unmarshal(bytes, credentials); err != nil {
		return nil, errors.Wrap(err, "unmarshaling credentials")
	}
	if credentials.Token == "" {
		return nil, ErrNotAuthenticated
	}
	return credentials, nil
}

// Save writes credentials to disk, readable only by the current user.
func (s *FileStore) Save(credentials *Credentials) error {
	dir, _ := filepath.Split(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating credentials directory")
	}
	bytes, err := json.MarshalIndent(credentials, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling credentials")
	}
	if err := os.WriteFile(s.path, bytes, 0600); err != nil {
		return errors.Wrap(err, "writing credentials")
	}
	return nil
}

// Clear removes stored credentials. Clearing absent credentials is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing credentials")
	}
	return nil
}
