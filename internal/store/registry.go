package store

import "sync"

// Registry hands out one Store per user so the webapp never mixes
// badge state between sessions. Stores are created lazily and live for
// the process lifetime — the store is a cache, losing it on restart is
// fine (the optional mirror repopulates badge counts).
type Registry struct {
	mu     sync.Mutex
	stores map[string]*Store
	onNew  []func(userID string, s *Store)
}

func NewRegistry() *Registry {
	return &Registry{stores: make(map[string]*Store)}
}

// OnNew registers a hook that runs once for every store the registry
// creates, before the store is handed to anyone. Used to wire badge
// broadcasting and mirroring.
func (r *Registry) OnNew(fn func(userID string, s *Store)) {
	r.mu.Lock()
	r.onNew = append(r.onNew, fn)
	r.mu.Unlock()
}

// For returns the store for userID, creating it on first use.
func (r *Registry) For(userID string) *Store {
	r.mu.Lock()
	s, ok := r.stores[userID]
	if !ok {
		s = New()
		r.stores[userID] = s
		for _, fn := range r.onNew {
			fn(userID, s)
		}
	}
	r.mu.Unlock()
	return s
}

// Drop forgets the store for userID (logout).
func (r *Registry) Drop(userID string) {
	r.mu.Lock()
	delete(r.stores, userID)
	r.mu.Unlock()
}
