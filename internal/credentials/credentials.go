// Package credentials verifies the local user against a hashed password file.
package credentials

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidCredentials is returned for any username or password mismatch.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrNotConfigured is returned when no credentials have been set.
	ErrNotConfigured = errors.New("credentials not configured")
)

// Verifier checks a username and password.
type Verifier interface {
	Verify(username, password string) error
}

type record struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash,omitempty"`
	// Password is the legacy plaintext field. It is accepted on Verify and
	// dropped on the next Set.
	Password string `yaml:"password,omitempty"`
}

// FileStore keeps a single user's credentials in a YAML file.
type FileStore struct {
	path string
	cost int
}

// NewFileStore creates a FileStore backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, cost: bcrypt.DefaultCost}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Set stores username with a bcrypt hash of password.
func (s *FileStore) Set(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("username is required")
	}
	if password == "" {
		return errors.New("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	data, err := yaml.Marshal(record{Username: username, PasswordHash: string(hash)})
	if err != nil {
		return fmt.Errorf("marshaling credentials: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating credentials directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}
	return nil
}

// Username returns the stored username.
func (s *FileStore) Username() (string, error) {
	rec, err := s.read()
	if err != nil {
		return "", err
	}
	return rec.Username, nil
}

// Verify returns nil when username and password match the stored record.
func (s *FileStore) Verify(username, password string) error {
	rec, err := s.read()
	if err != nil {
		return err
	}
	if strings.TrimSpace(username) != rec.Username {
		return ErrInvalidCredentials
	}
	switch {
	case rec.PasswordHash != "":
		if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)) != nil {
			return ErrInvalidCredentials
		}
	case rec.Password != "":
		if subtle.ConstantTimeCompare([]byte(rec.Password), []byte(password)) != 1 {
			return ErrInvalidCredentials
		}
	default:
		return ErrInvalidCredentials
	}
	return nil
}

func (s *FileStore) read() (record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return record{}, ErrNotConfigured
		}
		return record{}, fmt.Errorf("reading credentials: %w", err)
	}
	var rec record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return record{}, fmt.Errorf("parsing credentials: %w", err)
	}
	if rec.Username == "" {
		return record{}, ErrNotConfigured
	}
	return rec, nil
}
