package teller

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store persists whole snapshots at a single location.
//
// Load returns an error wrapping ErrNoSnapshot when there is no prior state,
// and one wrapping ErrCorruptSnapshot when the stored state is unusable.
type Store interface {
	Load() (*Snapshot, error)
	Save(*Snapshot) error
}

// FileStore keeps the snapshot in a single JSON file.
type FileStore struct {
	path string
}

// NewFileStore returns a store for the snapshot file at path.
func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

// Path returns the snapshot file name.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load() (*Snapshot, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q does not exist", ErrNoSnapshot, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open %q for reading: %w", s.path, err)
	}
	defer f.Close()
	snap, err := DecodeSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", s.path, err)
	}
	return snap, nil
}

// Save writes the snapshot next to the target and renames it over the
// previous one, so a failed write never leaves a truncated file behind.
func (s *FileStore) Save(snap *Snapshot) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create %q: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("cannot create temporary snapshot: %w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp) // no-op once renamed

	if err := EncodeSnapshot(f, snap); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("cannot sync %q: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot close %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("cannot replace %q: %w", s.path, err)
	}
	return nil
}

// MemStore keeps the encoded snapshot in memory.
type MemStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Load() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, ErrNoSnapshot
	}
	return DecodeSnapshot(bytes.NewReader(s.data))
}

func (s *MemStore) Save(snap *Snapshot) error {
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, snap); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = buf.Bytes()
	return nil
}

// Bytes returns the last saved snapshot, nil if none.
func (s *MemStore) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return bytes.Clone(s.data)
}

// SetBytes replaces the stored snapshot with raw data.
func (s *MemStore) SetBytes(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = bytes.Clone(data)
}
