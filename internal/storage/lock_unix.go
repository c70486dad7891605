//go:build unix

package storage

import (
	"fmt"
	"os"
	"syscall"
)

// lockImage takes an exclusive, non-blocking flock on path+".lock". The
// returned handle must stay open for as long as the image is in use.
func lockImage(path string) (*os.File, error) {
	f, err := os.OpenFile(path+".lock", os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrImageLocked, path)
	}
	return f, nil
}

func unlockImage(f *os.File) error {
	syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
	return f.Close()
}
