// Package gate holds the write-permission state that every mutating
// repository operation must pass. Permission is granted by presenting the
// shared passcode, persisted across restarts via the credential store, and
// revoked on logout.
//
// The passcode is compared in plaintext against the configured value. That
// is a known weakness of the shared-bin design, accepted for a
// single-operator tool; a stricter deployment should put a real
// authentication boundary in front of the bin instead.
package gate

import (
	stderrors "errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/hpratama/taskbin/internal/credential"
	"github.com/hpratama/taskbin/internal/errors"
	"github.com/hpratama/taskbin/internal/event"
	"github.com/hpratama/taskbin/internal/logging"
)

// Gate is the access gate guarding mutations. It has exactly two states,
// read-only and read-write, and is safe for concurrent use.
type Gate struct {
	expected string
	store    *credential.Store
	bus      *event.Bus
	log      *logging.Logger

	mu       sync.RWMutex
	canWrite bool

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	stopped sync.Once
}

// New creates a gate that grants write permission when the presented
// passcode equals expected. An empty expected passcode means no grant is
// possible and the gate stays read-only.
func New(expected string, store *credential.Store, bus *event.Bus, log *logging.Logger) *Gate {
	return &Gate{
		expected: expected,
		store:    store,
		bus:      bus,
		log:      log.WithComponent("gate"),
		stopCh:   make(chan struct{}),
	}
}

// Initialize reads the persisted credential and derives the starting
// permission state: granted iff a credential is stored and equals the
// expected passcode. Returns whether writes are permitted.
func (g *Gate) Initialize() bool {
	stored, err := g.store.Load()
	if err != nil {
		if !stderrors.Is(err, credential.ErrNotFound) {
			g.log.Warn("failed to read stored credential", "error", err)
		}
		g.setCanWrite(false)
		return false
	}

	granted := g.expected != "" && stored == g.expected
	if !granted {
		g.log.Warn("stored credential does not match, staying read-only")
	}
	g.setCanWrite(granted)
	return granted
}

// Grant compares the candidate against the expected passcode. On match the
// candidate is persisted and the gate moves to read-write. On mismatch the
// gate stays read-only and ErrInvalidCredential is returned.
func (g *Gate) Grant(candidate string) error {
	if g.expected == "" || candidate != g.expected {
		g.log.Info("credential rejected")
		return errors.ErrInvalidCredential
	}

	if err := g.store.Save(candidate); err != nil {
		return errors.Wrap(err, "persist credential")
	}

	g.setCanWrite(true)
	g.log.Info("write permission granted")
	return nil
}

// Revoke clears the persisted credential and moves the gate to read-only.
// Used on logout and when a pending credential entry is cancelled.
func (g *Gate) Revoke() error {
	if err := g.store.Clear(); err != nil {
		return errors.Wrap(err, "clear credential")
	}

	g.setCanWrite(false)
	g.log.Info("write permission revoked")
	return nil
}

// RequireWrite fails with ErrPermissionDenied unless write permission is
// currently granted. The persisted credential is re-read on every check, so
// a grant or revoke by another process takes effect here immediately.
func (g *Gate) RequireWrite() error {
	if !g.refresh() {
		return errors.ErrPermissionDenied
	}
	return nil
}

// CanWrite reports the current permission state without re-reading the
// persisted credential.
func (g *Gate) CanWrite() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.canWrite
}

// refresh re-derives the permission state from the persisted credential and
// returns it.
func (g *Gate) refresh() bool {
	stored, err := g.store.Load()
	granted := err == nil && g.expected != "" && stored == g.expected
	g.setCanWrite(granted)
	return granted
}

// setCanWrite updates the state and publishes a permission event when the
// state actually changed.
func (g *Gate) setCanWrite(canWrite bool) {
	g.mu.Lock()
	changed := g.canWrite != canWrite
	g.canWrite = canWrite
	g.mu.Unlock()

	if changed && g.bus != nil {
		g.bus.Publish(event.NewPermissionChangedEvent(canWrite))
	}
}

// Watch observes the credential file so a login or logout performed by
// another process flips this process's permission state and notifies
// subscribers. Watch returns immediately; Close stops the watcher.
func (g *Gate) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create credential watcher")
	}

	// Watch the directory rather than the file: the store replaces the file
	// by rename, and a watch on the old inode would go stale.
	if err := watcher.Add(filepath.Dir(g.store.Path())); err != nil {
		watcher.Close()
		return errors.Wrap(err, "watch credential directory")
	}

	g.watcher = watcher
	go g.watchLoop()
	return nil
}

// watchLoop applies credential file changes to the permission state.
func (g *Gate) watchLoop() {
	credPath := g.store.Path()
	for {
		select {
		case <-g.stopCh:
			return

		case evt, ok := <-g.watcher.Events:
			if !ok {
				return
			}
			if evt.Name != credPath {
				continue
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			g.log.Debug("credential file changed", "op", evt.Op.String())
			g.refresh()

		case err, ok := <-g.watcher.Errors:
			if !ok {
				return
			}
			g.log.Warn("credential watcher error", "error", err)
		}
	}
}

// Close stops the credential watcher if one is running.
func (g *Gate) Close() {
	g.stopped.Do(func() {
		close(g.stopCh)
		if g.watcher != nil {
			_ = g.watcher.Close()
		}
	})
}
