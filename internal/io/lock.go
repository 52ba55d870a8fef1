package ioutils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the directory lock.
var ErrLocked = errors.New("directory is locked by another run")

// lockFileName is created inside the locked directory and removed on unlock.
const lockFileName = ".musicbase.lock"

// DirLock is an exclusive advisory lock on a directory.
type DirLock struct {
	lock *flock.Flock
}

// Lock acquires the lock on dir without blocking.
func Lock(dir string) (*DirLock, error) {
	l := flock.New(filepath.Join(dir, lockFileName))
	ok, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", dir, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", dir, ErrLocked)
	}
	return &DirLock{lock: l}, nil
}

// Unlock removes the lock file and releases the lock. It is safe to call on a
// nil lock.
func (d *DirLock) Unlock() error {
	if d == nil || d.lock == nil {
		return nil
	}
	// Remove before unlocking so no other run locks a deleted file.
	rmErr := os.Remove(d.lock.Path())
	if errors.Is(rmErr, os.ErrNotExist) {
		rmErr = nil
	}
	return errors.Join(d.lock.Unlock(), rmErr)
}
