// Package repo owns the in-memory task collection and reconciles every
// mutation back into the remote bin. The bin only supports whole-document
// reads and overwrites, so each create, update, and delete is a full
// read-modify-write of the collection, followed by a re-fetch so local
// state always mirrors what the store last confirmed.
//
// Known hazard: the bin has no concurrency control. If two clients each
// mutate from their own snapshot before either re-fetches, the second
// overwrite silently discards the first client's change. This tracker
// targets a single operator at a time; the hazard is documented rather
// than patched with a versioning scheme the store does not offer.
package repo

import (
	"context"
	"sync"

	"github.com/hpratama/taskbin/internal/errors"
	"github.com/hpratama/taskbin/internal/event"
	"github.com/hpratama/taskbin/internal/identity"
	"github.com/hpratama/taskbin/internal/logging"
	"github.com/hpratama/taskbin/internal/task"
)

// Store is the remote document client the repository persists through.
type Store interface {
	// Fetch retrieves the entire bin as a task collection.
	Fetch(ctx context.Context) ([]task.Task, error)
	// Overwrite replaces the entire bin with the given collection.
	Overwrite(ctx context.Context, tasks []task.Task) error
}

// WriteGate gates mutating operations behind write permission.
type WriteGate interface {
	// RequireWrite fails with ErrPermissionDenied when writes are not
	// currently permitted.
	RequireWrite() error
}

// Repository owns the in-memory task collection. All exported methods are
// safe for concurrent use; mutating methods are serialized so two remote
// round trips from this process can never interleave.
type Repository struct {
	store Store
	gate  WriteGate
	opts  task.Options
	bus   *event.Bus
	log   *logging.Logger
	newID func() string

	mu       sync.RWMutex
	tasks    []task.Task
	inFlight bool
}

// Option configures a Repository.
type Option func(*Repository)

// WithIDFunc overrides the identifier assigner. Used by tests that need
// deterministic IDs.
func WithIDFunc(newID func() string) Option {
	return func(r *Repository) {
		r.newID = newID
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log *logging.Logger) Option {
	return func(r *Repository) {
		r.log = log.WithComponent("repo")
	}
}

// New creates a repository persisting through store, gated by gate, and
// validating drafts against opts. Events are published on bus; a nil bus
// disables notifications.
func New(store Store, gate WriteGate, opts task.Options, bus *event.Bus, options ...Option) *Repository {
	r := &Repository{
		store: store,
		gate:  gate,
		opts:  opts,
		bus:   bus,
		log:   logging.NopLogger(),
		newID: identity.NewID,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// List returns a snapshot of the collection as of the most recent
// successful fetch. The returned slice is a copy; callers cannot reach the
// repository's internal state through it.
func (r *Repository) List() []task.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return task.Clone(r.tasks)
}

// Refresh fetches the bin and replaces the in-memory collection with the
// authoritative remote copy. Fetched records that predate stable IDs are
// assigned one in memory; the assignment reaches the bin with the next
// persisted mutation.
func (r *Repository) Refresh(ctx context.Context) error {
	fetched, err := r.store.Fetch(ctx)
	if err != nil {
		r.fail("fetch", err)
		return err
	}

	r.assignIDs(fetched)

	r.mu.Lock()
	r.tasks = fetched
	r.mu.Unlock()

	r.log.Debug("collection refreshed", "tasks", len(fetched))
	r.publishCollection()
	return nil
}

// Create validates the draft, assigns a new identifier, and persists the
// grown collection. The in-memory collection is only replaced once the
// overwrite succeeds, so a store failure leaves local state exactly as it
// was. Returns the stored record.
func (r *Repository) Create(ctx context.Context, draft task.Draft) (task.Task, error) {
	if err := r.checkWrite("create"); err != nil {
		return task.Task{}, err
	}
	if err := r.opts.Validate(draft); err != nil {
		r.fail("create", err)
		return task.Task{}, err
	}

	done, err := r.begin("create")
	if err != nil {
		return task.Task{}, err
	}
	defer done()

	created := task.New(r.newID(), draft)
	next := append(r.List(), created)

	if err := r.store.Overwrite(ctx, next); err != nil {
		r.fail("create", err)
		return task.Task{}, err
	}

	r.commit(ctx, next)
	r.log.Info("task created", "id", created.ID, "name", created.Name)
	return created, nil
}

// Update validates the draft, replaces the fields of the task with the
// given id (identifier unchanged), and persists the whole collection with
// the same rollback rule as Create.
func (r *Repository) Update(ctx context.Context, id string, draft task.Draft) (task.Task, error) {
	if err := r.checkWrite("update"); err != nil {
		return task.Task{}, err
	}
	if err := r.opts.Validate(draft); err != nil {
		r.fail("update", err)
		return task.Task{}, err
	}

	done, err := r.begin("update")
	if err != nil {
		return task.Task{}, err
	}
	defer done()

	next := r.List()
	idx := indexOf(next, id)
	if idx < 0 {
		err := errors.NewNotFoundError("task", id)
		r.fail("update", err)
		return task.Task{}, err
	}

	updated := task.New(id, draft)
	next[idx] = updated

	if err := r.store.Overwrite(ctx, next); err != nil {
		r.fail("update", err)
		return task.Task{}, err
	}

	r.commit(ctx, next)
	r.log.Info("task updated", "id", id)
	return updated, nil
}

// Delete removes the task with the given id and persists the shrunk
// collection with the same rollback rule as Create.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.checkWrite("delete"); err != nil {
		return err
	}

	done, err := r.begin("delete")
	if err != nil {
		return err
	}
	defer done()

	current := r.List()
	idx := indexOf(current, id)
	if idx < 0 {
		err := errors.NewNotFoundError("task", id)
		r.fail("delete", err)
		return err
	}

	next := append(current[:idx], current[idx+1:]...)

	if err := r.store.Overwrite(ctx, next); err != nil {
		r.fail("delete", err)
		return err
	}

	r.commit(ctx, next)
	r.log.Info("task deleted", "id", id)
	return nil
}

// checkWrite consults the gate before any local mutation or remote call.
func (r *Repository) checkWrite(operation string) error {
	if err := r.gate.RequireWrite(); err != nil {
		r.fail(operation, err)
		return err
	}
	return nil
}

// begin marks a mutation in flight. A second mutating call while one is
// outstanding is rejected with ErrOperationInFlight rather than queued, so
// two overwrites from this process can never interleave.
func (r *Repository) begin(operation string) (func(), error) {
	r.mu.Lock()
	busy := r.inFlight
	if !busy {
		r.inFlight = true
	}
	r.mu.Unlock()

	if busy {
		err := errors.ErrOperationInFlight
		r.fail(operation, err)
		return nil, err
	}

	return func() {
		r.mu.Lock()
		r.inFlight = false
		r.mu.Unlock()
	}, nil
}

// commit installs the successfully persisted collection and then re-fetches
// so local state converges on whatever the store now holds. The overwrite
// already succeeded, so a failed re-fetch only delays convergence: the
// committed collection stands until the next successful fetch.
func (r *Repository) commit(ctx context.Context, next []task.Task) {
	r.mu.Lock()
	r.tasks = next
	r.mu.Unlock()

	fetched, err := r.store.Fetch(ctx)
	if err != nil {
		r.log.Warn("post-write refresh failed, keeping committed state", "error", err)
		r.publishCollection()
		return
	}
	r.assignIDs(fetched)

	r.mu.Lock()
	r.tasks = fetched
	r.mu.Unlock()
	r.publishCollection()
}

// assignIDs gives in-memory identifiers to fetched records that predate
// stable IDs. The assignment reaches the bin with the next persisted
// mutation.
func (r *Repository) assignIDs(tasks []task.Task) {
	for i := range tasks {
		if tasks[i].ID == "" {
			tasks[i].ID = r.newID()
		}
	}
}

// fail logs and publishes an operation failure.
func (r *Repository) fail(operation string, err error) {
	r.log.Warn("operation failed", "operation", operation, "error", err)
	if r.bus != nil {
		r.bus.Publish(event.NewOperationFailedEvent(operation, err))
	}
}

// publishCollection notifies subscribers with a snapshot.
func (r *Repository) publishCollection() {
	if r.bus == nil {
		return
	}
	r.bus.Publish(event.NewCollectionChangedEvent(r.List()))
}

// indexOf locates a task by id, or -1.
func indexOf(tasks []task.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
