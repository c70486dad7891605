package storage

import (
	"errors"
	"fmt"
	"sync"

	"github.com/san-kum/reactorsim/internal/reactor"
)

// Backend persists the whole slot array at once.
type Backend interface {
	// Load returns ErrNoImage when nothing has been persisted yet.
	Load() (Slots, error)
	Store(Slots) error
	Close() error
}

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// OpenBackend opens the backend named kind at path.
func OpenBackend(kind, path string) (Backend, error) {
	switch kind {
	case "", BackendFile:
		return OpenFile(path)
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown backend: %s", kind)
	}
}

// RecordStore is the fixed five-slot collection of parameter sets.
type RecordStore struct {
	mu      sync.Mutex
	backend Backend
	slots   Slots
	created bool
}

// Open loads the persisted slots, or persists five empty slots when no image
// exists yet.
func Open(backend Backend) (*RecordStore, error) {
	s := &RecordStore{backend: backend}

	slots, err := backend.Load()
	switch {
	case err == nil:
		s.slots = slots
	case errors.Is(err, ErrNoImage):
		if err := backend.Store(s.slots); err != nil {
			return nil, fmt.Errorf("initialize image: %w", err)
		}
		s.created = true
	default:
		return nil, fmt.Errorf("load image: %w", err)
	}
	return s, nil
}

// Created reports whether Open had to initialize a fresh image.
func (s *RecordStore) Created() bool {
	return s.created
}

func (s *RecordStore) Slots() Slots {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots
}

// Select copies the parameters held in slot n (1-based).
func (s *RecordStore) Select(n int) (reactor.Params, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, err := s.slots.Get(n)
	if err != nil {
		return reactor.Params{}, err
	}
	p, ok := slot.Params()
	if !ok {
		return reactor.Params{}, fmt.Errorf("%w: %d", ErrSlotEmpty, n)
	}
	return p, nil
}

// Overwrite replaces slot n with p and persists all slots. The in-memory
// slots are only updated once the backend accepted the new image.
func (s *RecordStore) Overwrite(n int, p reactor.Params) error {
	if err := CheckSlot(n); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.slots
	next[n-1] = FilledSlot(p)
	if err := s.backend.Store(next); err != nil {
		return fmt.Errorf("persist image: %w", err)
	}
	s.slots = next
	return nil
}

func (s *RecordStore) Close() error {
	return s.backend.Close()
}
