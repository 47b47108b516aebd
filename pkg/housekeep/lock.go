// Package housekeep removes stale roboshop by-products: aged log files
// and timestamped unit file backups. Runs are serialized through an
// advisory file lock; a held lock means another run is in progress and
// the new one should simply yield.
package housekeep

import (
	"errors"
	"fmt"
	"os"
)

// ErrLockHeld is returned when another housekeeping run holds the lock
var ErrLockHeld = errors.New("already locked")

// Lock is an exclusive advisory lock on a lock file
type Lock struct {
	file *os.File
}

// Acquire opens or creates the lock file and takes the lock without
// waiting. When the lock is held elsewhere, ErrLockHeld is returned.
func Acquire(path string) (*Lock, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open lock file %s: %w", path, err)
	}
	if err := lockFile(file); err != nil {
		_ = file.Close()
		if errors.Is(err, ErrLockHeld) {
			return nil, ErrLockHeld
		}
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	return &Lock{file: file}, nil
}

// Release unlocks and closes the lock file
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := unlockFile(l.file); err != nil {
		_ = l.file.Close()
		return err
	}
	return l.file.Close()
}
