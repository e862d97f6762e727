package fs

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/librarian/pkg/core"
)

const (
	// LockSuffix is appended to a target filename to form its lock file.
	LockSuffix = ".lock"

	// DefaultLockTimeout bounds how long a writer waits for another process.
	DefaultLockTimeout = 5 * time.Second

	// staleLockAge is how old a lock file must be before it is considered abandoned.
	staleLockAge = 30 * time.Second
)

// FileLock is an advisory, process-level lock next to the file it protects.
// It only guards against cooperating processes that use the same lock.
type FileLock struct {
	path    string
	timeout time.Duration
}

// NewFileLock returns a lock guarding target. A non-positive timeout uses DefaultLockTimeout.
func NewFileLock(target string, timeout time.Duration) *FileLock {
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	return &FileLock{path: target + LockSuffix, timeout: timeout}
}

// Path returns the lock file path.
func (l *FileLock) Path() string {
	return l.path
}

// Lock acquires the lock, polling until it succeeds, ctx is done or the timeout expires.
// The returned function releases it.
func (l *FileLock) Lock(ctx context.Context) (func(), error) {
	deadline := time.Now().Add(l.timeout)

	for {
		// Try to create lock file atomically
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			fmt.Fprintf(f, "%d\n", os.Getpid())
			f.Close()
			return func() {
				os.Remove(l.path)
			}, nil
		}

		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", l.path, err)
		}

		if l.removeIfStale() {
			continue
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s", core.ErrLockTimeout, l.path)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// removeIfStale deletes a lock left behind by a crashed writer.
func (l *FileLock) removeIfStale() bool {
	info, err := os.Stat(l.path)
	if err != nil {
		return os.IsNotExist(err)
	}
	if time.Since(info.ModTime()) < staleLockAge {
		return false
	}
	return os.Remove(l.path) == nil
}
