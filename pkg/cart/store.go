package cart

import (
	"os"
	"path/filepath"
	"sync"
)

// StorageKey is the fixed key the cart persists under, shared with the web
// client's local storage.
const StorageKey = "norcal_cart"

// Store is the durable backend for the cart. Save and Clear notify
// subscribers, standing in for the browser-wide storage event that keeps
// the cart badge in sync without polling.
type Store interface {
	// Load returns the persisted payload, or nil when nothing is stored.
	Load() ([]byte, error)
	Save(data []byte) error
	Clear() error
	// Subscribe registers fn for change notifications and returns an
	// unsubscribe func.
	Subscribe(fn func()) (unsubscribe func())
}

type subscribers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func()
}

func (s *subscribers) add(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fns == nil {
		s.fns = map[int]func(){}
	}
	id := s.next
	s.next++
	s.fns[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.fns, id)
	}
}

func (s *subscribers) broadcast() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.fns))
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// FileStore keeps the cart in a single file under dir, named after
// StorageKey, so it survives process restarts the way localStorage
// survives page reloads.
type FileStore struct {
	dir  string
	subs subscribers
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) path() string {
	return filepath.Join(f.dir, StorageKey+".json")
}

func (f *FileStore) Load() ([]byte, error) {
	b, err := os.ReadFile(f.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

func (f *FileStore) Save(data []byte) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(f.path(), data, 0o644); err != nil {
		return err
	}
	f.subs.broadcast()
	return nil
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.path())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	f.subs.broadcast()
	return nil
}

func (f *FileStore) Subscribe(fn func()) func() {
	return f.subs.add(fn)
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu   sync.Mutex
	data []byte
	subs subscribers
}

func NewMemStore() *MemStore { return &MemStore{} }

func (m *MemStore) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

func (m *MemStore) Save(data []byte) error {
	m.mu.Lock()
	m.data = make([]byte, len(data))
	copy(m.data, data)
	m.mu.Unlock()
	m.subs.broadcast()
	return nil
}

func (m *MemStore) Clear() error {
	m.mu.Lock()
	m.data = nil
	m.mu.Unlock()
	m.subs.broadcast()
	return nil
}

func (m *MemStore) Subscribe(fn func()) func() {
	return m.subs.add(fn)
}
