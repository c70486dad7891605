package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrNoImage indicates nothing has been persisted yet.
	ErrNoImage = errors.New("storage: no record image")

	// ErrImageLocked indicates another process holds the image.
	ErrImageLocked = errors.New("storage: record image in use by another process")
)

// DefaultImagePath is used when no data path is configured.
const DefaultImagePath = "reactor.bin"

// FileBackend persists slots as a fixed-size binary image.
type FileBackend struct {
	path string
	lock *os.File
}

// OpenFile locks the image at path for exclusive use. The image itself is
// not read until Load.
func OpenFile(path string) (*FileBackend, error) {
	if path == "" {
		path = DefaultImagePath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create image dir: %w", err)
		}
	}

	lock, err := lockImage(path)
	if err != nil {
		return nil, err
	}
	return &FileBackend{path: path, lock: lock}, nil
}

func (b *FileBackend) Load() (Slots, error) {
	f, err := os.Open(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Slots{}, ErrNoImage
		}
		return Slots{}, err
	}
	defer f.Close()

	return DecodeImage(f)
}

// Store replaces the whole image. The new image is written next to the old
// one and renamed over it.
func (b *FileBackend) Store(slots Slots) error {
	data, err := EncodeImage(slots)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(b.path), filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), b.path)
}

func (b *FileBackend) Close() error {
	if b.lock == nil {
		return nil
	}
	err := unlockImage(b.lock)
	b.lock = nil
	return err
}
