// Package registry implements the in-memory activity catalog.
package registry

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/SwatiNandaEY/skills-getting-started-with-github-copilot/internal/domain"
)

// MemoryRegistry holds the catalog and rosters for the lifetime of the
// process. Activities are created at construction only; rosters mutate in
// place under the registry lock.
type MemoryRegistry struct {
	mu         sync.RWMutex
	activities map[string]*domain.Activity
	names      []string
}

// NewMemoryRegistry constructs a registry populated with the default school
// catalog.
func NewMemoryRegistry() *MemoryRegistry {
	reg := &MemoryRegistry{activities: make(map[string]*domain.Activity)}
	for _, activity := range DefaultCatalog() {
		reg.add(activity)
	}
	return reg
}

// NewMemoryRegistryWithCatalog constructs a registry from an explicit
// catalog, validating the seed invariants.
func NewMemoryRegistryWithCatalog(catalog []domain.Activity) (*MemoryRegistry, error) {
	reg := &MemoryRegistry{activities: make(map[string]*domain.Activity)}
	for _, activity := range catalog {
		if activity.Name == "" {
			return nil, fmt.Errorf("activity with empty name in catalog")
		}
		if activity.MaxParticipants <= 0 {
			return nil, fmt.Errorf("activity %q: max_participants must be positive", activity.Name)
		}
		if _, exists := reg.activities[activity.Name]; exists {
			return nil, fmt.Errorf("duplicate activity %q in catalog", activity.Name)
		}
		for i, email := range activity.Participants {
			if slices.Contains(activity.Participants[:i], email) {
				return nil, fmt.Errorf("activity %q: duplicate participant %q", activity.Name, email)
			}
		}
		reg.add(activity)
	}
	return reg, nil
}

func (r *MemoryRegistry) add(activity domain.Activity) {
	stored := activity.Clone()
	r.activities[stored.Name] = &stored
	r.names = append(r.names, stored.Name)
}

// List returns a copy of the full catalog keyed by activity name. Rosters in
// the result are snapshots; mutating them does not affect the registry.
func (r *MemoryRegistry) List(ctx context.Context) map[string]domain.Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]domain.Activity, len(r.names))
	for _, name := range r.names {
		out[name] = r.activities[name].Clone()
	}
	return out
}

// Signup appends the email to the activity's roster, preserving insertion
// order. The registry lock spans the presence check and the append so
// concurrent requests cannot produce a duplicate entry. Capacity is
// descriptive metadata and is not enforced here.
func (r *MemoryRegistry) Signup(ctx context.Context, name, email string) (*domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[name]
	if !ok {
		return nil, domain.ErrActivityNotFound
	}
	if slices.Contains(activity.Participants, email) {
		return nil, domain.ErrAlreadySignedUp
	}

	activity.Participants = append(activity.Participants, email)
	snapshot := activity.Clone()
	return &snapshot, nil
}

// Unregister removes exactly one occurrence of the email from the activity's
// roster under the same lock discipline as Signup.
func (r *MemoryRegistry) Unregister(ctx context.Context, name, email string) (*domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity, ok := r.activities[name]
	if !ok {
		return nil, domain.ErrActivityNotFound
	}
	idx := slices.Index(activity.Participants, email)
	if idx < 0 {
		return nil, domain.ErrNotRegistered
	}

	activity.Participants = slices.Delete(activity.Participants, idx, idx+1)
	snapshot := activity.Clone()
	return &snapshot, nil
}

// Snapshot returns a copy of a single activity.
func (r *MemoryRegistry) Snapshot(ctx context.Context, name string) (*domain.Activity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	activity, ok := r.activities[name]
	if !ok {
		return nil, false
	}
	snapshot := activity.Clone()
	return &snapshot, true
}

// Names returns the activity names in catalog order.
func (r *MemoryRegistry) Names(ctx context.Context) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
