package gate

import (
	"testing"
	"time"

	"github.com/hpratama/taskbin/internal/credential"
	"github.com/hpratama/taskbin/internal/errors"
	"github.com/hpratama/taskbin/internal/event"
	"github.com/hpratama/taskbin/internal/logging"
)

const testPasscode = "170845"

func newTestGate(t *testing.T) (*Gate, *credential.Store, *event.Bus) {
	t.Helper()

	store, err := credential.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	bus := event.NewBus()
	g := New(testPasscode, store, bus, logging.NopLogger())
	t.Cleanup(g.Close)
	return g, store, bus
}

func TestGate_InitialStateIsReadOnly(t *testing.T) {
	g, _, _ := newTestGate(t)

	if g.Initialize() {
		t.Error("Initialize() = true with no stored credential, want false")
	}
	if err := g.RequireWrite(); !errors.Is(err, errors.ErrPermissionDenied) {
		t.Errorf("RequireWrite() error = %v, want ErrPermissionDenied", err)
	}
}

func TestGate_InitializeFromStoredCredential(t *testing.T) {
	g, store, _ := newTestGate(t)

	if err := store.Save(testPasscode); err != nil {
		t.Fatalf("seed credential: %v", err)
	}
	if !g.Initialize() {
		t.Error("Initialize() = false with matching stored credential, want true")
	}
}

func TestGate_InitializeWithStaleCredential(t *testing.T) {
	g, store, _ := newTestGate(t)

	// A credential stored before the passcode was rotated must not grant.
	if err := store.Save("000000"); err != nil {
		t.Fatalf("seed credential: %v", err)
	}
	if g.Initialize() {
		t.Error("Initialize() = true with mismatched stored credential, want false")
	}
}

func TestGate_GrantWrongPasscode(t *testing.T) {
	g, store, _ := newTestGate(t)
	g.Initialize()

	err := g.Grant("000000")
	if !errors.Is(err, errors.ErrInvalidCredential) {
		t.Fatalf("Grant() error = %v, want ErrInvalidCredential", err)
	}
	if g.CanWrite() {
		t.Error("permission should stay read-only after a rejected grant")
	}
	if _, err := store.Load(); !errors.Is(err, credential.ErrNotFound) {
		t.Error("a rejected candidate must not be persisted")
	}
}

func TestGate_GrantCorrectPasscode(t *testing.T) {
	g, store, _ := newTestGate(t)
	g.Initialize()

	if err := g.Grant(testPasscode); err != nil {
		t.Fatalf("Grant() error = %v", err)
	}
	if !g.CanWrite() {
		t.Error("permission should be read-write after a successful grant")
	}
	if err := g.RequireWrite(); err != nil {
		t.Errorf("RequireWrite() error = %v, want nil", err)
	}

	stored, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if stored != testPasscode {
		t.Errorf("persisted credential = %q, want %q", stored, testPasscode)
	}
}

func TestGate_Revoke(t *testing.T) {
	g, store, _ := newTestGate(t)
	g.Initialize()

	if err := g.Grant(testPasscode); err != nil {
		t.Fatalf("Grant() error = %v", err)
	}
	if err := g.Revoke(); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}

	if g.CanWrite() {
		t.Error("permission should be read-only after revoke")
	}
	if _, err := store.Load(); !errors.Is(err, credential.ErrNotFound) {
		t.Error("revoke should clear the persisted credential")
	}
}

func TestGate_EmptyExpectedPasscodeNeverGrants(t *testing.T) {
	store, err := credential.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	g := New("", store, event.NewBus(), logging.NopLogger())
	defer g.Close()

	if err := g.Grant(""); !errors.Is(err, errors.ErrInvalidCredential) {
		t.Errorf("Grant(\"\") error = %v, want ErrInvalidCredential", err)
	}
	if g.Initialize() {
		t.Error("gate with no configured passcode must stay read-only")
	}
}

func TestGate_PublishesPermissionEvents(t *testing.T) {
	g, _, bus := newTestGate(t)

	var states []bool
	bus.Subscribe(event.TypePermissionChanged, func(e event.Event) {
		states = append(states, e.(event.PermissionChangedEvent).CanWrite)
	})

	g.Initialize() // read-only from the start, no transition, no event
	if err := g.Grant(testPasscode); err != nil {
		t.Fatalf("Grant() error = %v", err)
	}
	if err := g.Revoke(); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}

	if len(states) != 2 || !states[0] || states[1] {
		t.Errorf("permission events = %v, want [true false]", states)
	}
}

func TestGate_RequireWriteSeesOutOfBandRevoke(t *testing.T) {
	g, store, _ := newTestGate(t)
	g.Initialize()

	if err := g.Grant(testPasscode); err != nil {
		t.Fatalf("Grant() error = %v", err)
	}

	// Another process logging out clears the file behind our back.
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	if err := g.RequireWrite(); !errors.Is(err, errors.ErrPermissionDenied) {
		t.Errorf("RequireWrite() error = %v, want ErrPermissionDenied after out-of-band revoke", err)
	}
}

func TestGate_WatchFlipsStateOnFileChange(t *testing.T) {
	g, store, bus := newTestGate(t)
	g.Initialize()

	granted := make(chan bool, 4)
	bus.Subscribe(event.TypePermissionChanged, func(e event.Event) {
		granted <- e.(event.PermissionChangedEvent).CanWrite
	})

	if err := g.Watch(); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	// Simulate a login performed by another process.
	if err := store.Save(testPasscode); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	select {
	case canWrite := <-granted:
		if !canWrite {
			t.Error("expected permission granted after external credential write")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watcher to pick up credential change")
	}
}
