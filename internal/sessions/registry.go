package sessions

import (
	"sync"

	"github.com/google/uuid"
)

// Factory builds a fresh Session for the registry.
type Factory func() *Session

type entry struct {
	mu      sync.Mutex
	session *Session
}

// Registry keeps live sessions in memory and is safe for concurrent use.
// Calls against one session are serialized.
type Registry struct {
	mu         sync.RWMutex
	byID       map[string]*entry
	newSession Factory
}

// NewRegistry constructs a Registry creating sessions with factory.
func NewRegistry(factory Factory) *Registry {
	return &Registry{
		byID:       make(map[string]*entry),
		newSession: factory,
	}
}

// Create registers a new empty session and returns its id.
func (r *Registry) Create() string {
	return r.CreateWith(nil)
}

// CreateWith is Create, running fn on the session before it becomes visible
// to other callers.
func (r *Registry) CreateWith(fn func(id string, s *Session)) string {
	id := uuid.NewString()
	e := &entry{session: r.newSession()}
	if fn != nil {
		fn(id, e.session)
	}
	r.mu.Lock()
	r.byID[id] = e
	r.mu.Unlock()
	return id
}

// Do runs fn with exclusive access to the session id.
func (r *Registry) Do(id string, fn func(*Session) error) error {
	r.mu.RLock()
	e, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

// Delete disposes and forgets the session id.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	e, ok := r.byID[id]
	delete(r.byID, id)
	r.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	e.mu.Lock()
	e.session.Dispose()
	e.mu.Unlock()
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// Close disposes every session.
func (r *Registry) Close() {
	r.mu.Lock()
	entries := r.byID
	r.byID = make(map[string]*entry)
	r.mu.Unlock()
	for _, e := range entries {
		e.mu.Lock()
		e.session.Dispose()
		e.mu.Unlock()
	}
}
