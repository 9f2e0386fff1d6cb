package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Document is a single JSON object stored in its own file. Each Save fully
// replaces the previous value.
type Document[T any] struct {
	file
}

// NewDocument returns a Document backed by path.
func NewDocument[T any](path string, opts ...Option) *Document[T] {
	return &Document[T]{file: newFile(path, opts)}
}

// Path returns the backing file location.
func (d *Document[T]) Path() string {
	return d.path
}

// Load reads the stored value. Absent or undecodable data yields the zero
// value of T with StateEmpty or StateUnreadable and a nil error.
func (d *Document[T]) Load() (T, State, error) {
	var zero T

	data, err := d.read()
	if err != nil {
		var ue *unreadableError
		if errors.As(err, &ue) {
			d.warnUnreadable(ue.err)
			return zero, StateUnreadable, nil
		}
		return zero, StateEmpty, err
	}
	if data == nil || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return zero, StateEmpty, nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		d.warnUnreadable(fmt.Errorf("decoding %s: %w", d.path, err))
		return zero, StateUnreadable, nil
	}
	return v, StateOK, nil
}

// Save overwrites the backing file with v.
func (d *Document[T]) Save(v T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", d.path, err)
	}
	return d.write(append(data, '\n'))
}
