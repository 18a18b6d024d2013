// Package jsonstore is a lowdb-style single-file JSON database. The whole
// document lives in memory and is rewritten atomically (temp file + rename)
// on every mutation, so the data file is always a complete valid snapshot
// and can be shipped as-is by the backup endpoint.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var ErrNotFound = errors.New("jsonstore: record not found")

// Store guards a map of collection name to raw JSON value. All reads and
// read-modify-write cycles hold the mutex for their full duration.
type Store struct {
	mu   sync.Mutex
	path string
	doc  map[string]json.RawMessage
}

// Open loads the document at path, creating an empty one if the file does
// not exist. A corrupt file is an error here (the server must not silently
// wipe the shop database); callers decide whether to bail or restore.
func Open(path string) (*Store, error) {
	s := &Store{path: path, doc: map[string]json.RawMessage{}}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if len(b) > 0 {
		if err := json.Unmarshal(b, &s.doc); err != nil {
			return nil, fmt.Errorf("jsonstore: parse %s: %w", path, err)
		}
	}
	return s, nil
}

func (s *Store) Path() string { return s.path }

// flush rewrites the document. Caller must hold s.mu.
func (s *Store) flush() error {
	b, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".db-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *Store) get(name string, dst any) error {
	raw, ok := s.doc[name]
	if !ok {
		return nil // absent collection reads as zero value
	}
	return json.Unmarshal(raw, dst)
}

func (s *Store) set(name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.doc[name] = raw
	return s.flush()
}

// Collection is a typed view over one named array in the document.
type Collection[T any] struct {
	s    *Store
	name string
}

func NewCollection[T any](s *Store, name string) *Collection[T] {
	return &Collection[T]{s: s, name: name}
}

// All returns a fresh decode of the collection.
func (c *Collection[T]) All() ([]T, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	var items []T
	if err := c.s.get(c.name, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Collection[T]) Append(item T) error {
	return c.Mutate(func(items []T) ([]T, error) {
		return append(items, item), nil
	})
}

func (c *Collection[T]) Replace(items []T) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	return c.s.set(c.name, items)
}

// Mutate runs fn inside the store lock and persists the result. Returning
// an error from fn aborts without writing.
func (c *Collection[T]) Mutate(fn func(items []T) ([]T, error)) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	var items []T
	if err := c.s.get(c.name, &items); err != nil {
		return err
	}
	out, err := fn(items)
	if err != nil {
		return err
	}
	return c.s.set(c.name, out)
}

// Scalar is a typed view over one named non-array value (counters, the
// gate password, ...).
type Scalar[T any] struct {
	s    *Store
	name string
}

func NewScalar[T any](s *Store, name string) *Scalar[T] {
	return &Scalar[T]{s: s, name: name}
}

func (v *Scalar[T]) Get() (T, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var out T
	err := v.s.get(v.name, &out)
	return out, err
}

func (v *Scalar[T]) Set(val T) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.set(v.name, val)
}

// Update applies fn to the current value and persists the result,
// returning the new value.
func (v *Scalar[T]) Update(fn func(T) T) (T, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var cur T
	if err := v.s.get(v.name, &cur); err != nil {
		return cur, err
	}
	next := fn(cur)
	if err := v.s.set(v.name, next); err != nil {
		return cur, err
	}
	return next, nil
}
