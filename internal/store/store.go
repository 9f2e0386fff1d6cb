// Package store persists ledger collections as JSON files on local disk.
//
// Absent, empty, or unreadable files all load as "no data". Callers that care
// about the difference inspect Snapshot.State. Only conditions the empty-state
// fallback cannot absorb (the path itself being inaccessible) are returned as
// errors, and those wrap ErrStorageUnavailable.
//
// There is no locking. Save truncates and rewrites the file in place, so
// concurrent writers race with last-writer-wins semantics and a crash
// mid-write loses the file.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/finguard-dev/finguard/internal/logger"
)

// ErrStorageUnavailable marks failures that are not data problems: the backing
// path cannot be read or written at all.
var ErrStorageUnavailable = errors.New("storage unavailable")

// State classifies the outcome of a load.
type State int

const (
	// StateOK means the file decoded and held at least one item.
	StateOK State = iota
	// StateEmpty means the file was absent, blank, or held no items.
	StateEmpty
	// StateUnreadable means the file exists but could not be decrypted or decoded.
	StateUnreadable
)

func (s State) String() string {
	switch s {
	case StateOK:
		return "ok"
	case StateEmpty:
		return "empty"
	case StateUnreadable:
		return "unreadable"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Sealer wraps serialized bytes for the encrypted variant.
type Sealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(blob []byte) ([]byte, error)
}

// Option configures a Collection or Document.
type Option func(*file)

// WithSealer encrypts the file contents with s.
func WithSealer(s Sealer) Option {
	return func(f *file) { f.sealer = s }
}

// file holds the read/write plumbing shared by Collection and Document.
type file struct {
	path   string
	sealer Sealer
}

func newFile(path string, opts []Option) file {
	f := file{path: path}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// read returns the decoded plaintext. A nil slice with a nil error means the
// file is absent or blank. *unreadableError values are data problems.
func (f file) read() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrStorageUnavailable, f.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	if f.sealer == nil {
		return data, nil
	}

	plain, err := f.sealer.Open(data)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: opening %s: %w", ErrStorageUnavailable, f.path, err)
		}
		return nil, &unreadableError{err: fmt.Errorf("decrypting %s: %w", f.path, err)}
	}
	return plain, nil
}

func (f file) write(data []byte) error {
	if f.sealer != nil {
		sealed, err := f.sealer.Seal(data)
		if err != nil {
			return fmt.Errorf("%w: sealing %s: %w", ErrStorageUnavailable, f.path, err)
		}
		data = sealed
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("%w: creating dir for %s: %w", ErrStorageUnavailable, f.path, err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrStorageUnavailable, f.path, err)
	}
	return nil
}

func (f file) warnUnreadable(cause error) {
	logger.Named("store").Warnw("ledger file unreadable, treating as empty",
		"path", f.path,
		"error", cause,
	)
}

type unreadableError struct {
	err error
}

func (e *unreadableError) Error() string { return e.err.Error() }

func (e *unreadableError) Unwrap() error { return e.err }
