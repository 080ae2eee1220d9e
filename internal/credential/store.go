// Package credential persists the write-access passcode across process
// restarts. The store holds exactly one string value in a file under the
// state directory; the access gate reads it on startup and on permission
// checks, and clears it on logout.
package credential

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// credentialFile is the fixed name the passcode is stored under.
const credentialFile = "credential"

// ErrNotFound is returned by Load when no credential is stored.
var ErrNotFound = fmt.Errorf("no stored credential")

// Store is a file-backed single-value credential store. It is safe for
// concurrent use within one process; writes are atomic so another process
// never observes a half-written value.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// NewStore creates a credential store rooted at the given directory.
// The directory is created if it doesn't exist.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create credential directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Path returns the location of the credential file. The gate's file watcher
// observes this path for out-of-band changes.
func (s *Store) Path() string {
	return filepath.Join(s.dir, credentialFile)
}

// Save persists the credential value using an atomic write.
func (s *Store) Save(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return atomicWriteFile(s.Path(), []byte(value+"\n"), 0600)
}

// Load retrieves the stored credential. Returns ErrNotFound when nothing
// has been stored or the value was cleared.
func (s *Store) Load() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read credential: %w", err)
	}

	value := strings.TrimRight(string(data), "\n")
	if value == "" {
		return "", ErrNotFound
	}
	return value, nil
}

// Clear removes the stored credential. Clearing an already-empty store is
// not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	return nil
}

// atomicWriteFile writes data to path via a temp file and rename, so a
// concurrent reader sees either the old value or the new one, never a
// partial write.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}
