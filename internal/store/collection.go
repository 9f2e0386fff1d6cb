package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Snapshot is the result of loading a collection.
type Snapshot[T any] struct {
	Items []T
	State State
	// Cause explains a StateUnreadable load. Nil otherwise.
	Cause error
}

// Collection is an insertion-ordered sequence of records stored as a JSON array.
type Collection[T any] struct {
	file
}

// NewCollection returns a Collection backed by path.
func NewCollection[T any](path string, opts ...Option) *Collection[T] {
	return &Collection[T]{file: newFile(path, opts)}
}

// Path returns the backing file location.
func (c *Collection[T]) Path() string {
	return c.path
}

// Load reads the whole collection. Absent or undecodable data yields an empty
// Items slice and a nil error; see Snapshot.State for which one it was.
func (c *Collection[T]) Load() (Snapshot[T], error) {
	data, err := c.read()
	if err != nil {
		var ue *unreadableError
		if errors.As(err, &ue) {
			c.warnUnreadable(ue.err)
			return Snapshot[T]{Items: []T{}, State: StateUnreadable, Cause: ue.err}, nil
		}
		return Snapshot[T]{Items: []T{}}, err
	}
	if data == nil {
		return Snapshot[T]{Items: []T{}, State: StateEmpty}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		cause := fmt.Errorf("decoding %s: %w", c.path, err)
		c.warnUnreadable(cause)
		return Snapshot[T]{Items: []T{}, State: StateUnreadable, Cause: cause}, nil
	}
	if len(items) == 0 {
		return Snapshot[T]{Items: []T{}, State: StateEmpty}, nil
	}
	return Snapshot[T]{Items: items, State: StateOK}, nil
}

// Save serializes items and overwrites the backing file.
func (c *Collection[T]) Save(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c.path, err)
	}
	return c.write(append(data, '\n'))
}

// Append loads the collection, adds item at the end, saves, and returns the
// updated sequence. An unreadable file is treated as empty and overwritten.
func (c *Collection[T]) Append(item T) ([]T, error) {
	snap, err := c.Load()
	if err != nil {
		return nil, err
	}
	items := append(snap.Items, item)
	if err := c.Save(items); err != nil {
		return nil, err
	}
	return items, nil
}
