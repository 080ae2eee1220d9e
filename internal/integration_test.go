// Package internal contains integration tests that verify the packages
// work together correctly. These tests exercise the credential store, the
// write gate, the repository, and the event bus as one assembly.
package internal

import (
	"context"
	"sync"
	"testing"

	"github.com/hpratama/taskbin/internal/credential"
	"github.com/hpratama/taskbin/internal/errors"
	"github.com/hpratama/taskbin/internal/event"
	"github.com/hpratama/taskbin/internal/gate"
	"github.com/hpratama/taskbin/internal/logging"
	"github.com/hpratama/taskbin/internal/repo"
	"github.com/hpratama/taskbin/internal/task"
)

const testPasscode = "170845"

// memoryStore stands in for the remote bin.
type memoryStore struct {
	mu     sync.Mutex
	remote []task.Task
}

func (s *memoryStore) Fetch(ctx context.Context) ([]task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]task.Task(nil), s.remote...), nil
}

func (s *memoryStore) Overwrite(ctx context.Context, tasks []task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remote = append([]task.Task(nil), tasks...)
	return nil
}

func testOptions() task.Options {
	return task.Options{
		Projects: []string{"MyGraPARI", "OM"},
		Statuses: []string{task.StatusCompleted, task.StatusInProgress, task.StatusPending, task.StatusNotStarted},
	}
}

func newAssembly(t *testing.T) (*repo.Repository, *gate.Gate, *memoryStore, *event.Bus) {
	t.Helper()

	creds, err := credential.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	bus := event.NewBus()
	g := gate.New(testPasscode, creds, bus, logging.NopLogger())
	g.Initialize()
	t.Cleanup(g.Close)

	store := &memoryStore{}
	r := repo.New(store, g, testOptions(), bus)
	return r, g, store, bus
}

func draft(name string) task.Draft {
	deadline, _ := task.ParseDate("2025-03-01")
	return task.Draft{
		Name:        name,
		Description: "integration fixture",
		Project:     "OM",
		Status:      task.StatusPending,
		Deadline:    deadline,
	}
}

// TestWriteDeniedUntilLogin verifies the gate blocks repository mutations
// until the passcode is granted, and that the grant survives a restart
// through the persisted credential.
func TestWriteDeniedUntilLogin(t *testing.T) {
	r, g, store, _ := newAssembly(t)
	ctx := context.Background()

	if _, err := r.Create(ctx, draft("blocked")); !errors.Is(err, errors.ErrPermissionDenied) {
		t.Fatalf("expected permission denied before login, got %v", err)
	}
	if len(store.remote) != 0 {
		t.Fatal("denied create must not touch the remote bin")
	}

	if err := g.Grant("wrong"); !errors.Is(err, errors.ErrInvalidCredential) {
		t.Fatalf("expected invalid credential, got %v", err)
	}
	if err := g.Grant(testPasscode); err != nil {
		t.Fatalf("Grant: %v", err)
	}

	created, err := r.Create(ctx, draft("allowed"))
	if err != nil {
		t.Fatalf("Create after login: %v", err)
	}
	if created.ID == "" {
		t.Error("expected an assigned id")
	}
	if len(store.remote) != 1 {
		t.Fatalf("expected 1 remote task, got %d", len(store.remote))
	}
}

// TestGrantPersistsAcrossProcesses verifies a second gate sharing the same
// credential directory starts out writable after a grant in the first.
func TestGrantPersistsAcrossProcesses(t *testing.T) {
	dir := t.TempDir()

	creds, err := credential.NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	first := gate.New(testPasscode, creds, event.NewBus(), logging.NopLogger())
	defer first.Close()
	if err := first.Grant(testPasscode); err != nil {
		t.Fatalf("Grant: %v", err)
	}

	creds2, err := credential.NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	second := gate.New(testPasscode, creds2, event.NewBus(), logging.NopLogger())
	defer second.Close()
	if !second.Initialize() {
		t.Error("expected the second gate to pick up the persisted grant")
	}

	// A logout elsewhere is honored on the next write check.
	if err := first.Revoke(); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if err := second.RequireWrite(); !errors.Is(err, errors.ErrPermissionDenied) {
		t.Errorf("expected permission denied after revoke, got %v", err)
	}
}

// TestEventBusIntegration verifies repository mutations and permission
// changes reach a subscriber the way the board consumes them.
func TestEventBusIntegration(t *testing.T) {
	r, g, _, bus := newAssembly(t)
	ctx := context.Background()

	var mu sync.Mutex
	var received []event.Event
	bus.SubscribeAll(func(e event.Event) {
		mu.Lock()
		received = append(received, e)
		mu.Unlock()
	})

	if err := g.Grant(testPasscode); err != nil {
		t.Fatalf("Grant: %v", err)
	}
	created, err := r.Create(ctx, draft("observed"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := r.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()

	var types []string
	for _, e := range received {
		types = append(types, e.EventType())
	}

	want := map[string]int{
		event.TypePermissionChanged: 1,
		event.TypeCollectionChanged: 2,
	}
	got := map[string]int{}
	for _, typ := range types {
		got[typ]++
	}
	for typ, n := range want {
		if got[typ] < n {
			t.Errorf("expected at least %d %q events, got %d (all: %v)", n, typ, got[typ], types)
		}
	}
}

// TestFullRoundTrip walks a collection through create, edit, and delete
// and checks the remote document tracks every step.
func TestFullRoundTrip(t *testing.T) {
	r, g, store, _ := newAssembly(t)
	ctx := context.Background()

	if err := g.Grant(testPasscode); err != nil {
		t.Fatalf("Grant: %v", err)
	}

	created, err := r.Create(ctx, draft("round trip"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	edited := task.DraftOf(created)
	edited.Status = task.StatusCompleted
	updated, err := r.Update(ctx, created.ID, edited)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != task.StatusCompleted {
		t.Errorf("expected completed status, got %q", updated.Status)
	}
	if store.remote[0].Status != task.StatusCompleted {
		t.Errorf("remote bin not updated: %+v", store.remote[0])
	}

	if err := r.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(store.remote) != 0 {
		t.Errorf("expected empty remote bin, got %d tasks", len(store.remote))
	}
}
