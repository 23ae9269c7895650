// Package visitor holds one workspace per browser: its cart, its session and
// the promo applied to the cart.
package visitor

import (
	"context"
	"sync"
	"time"

	"github.com/somnath11som/webeF/internal/cart"
	"github.com/somnath11som/webeF/internal/checkout"
	"github.com/somnath11som/webeF/internal/session"
	"github.com/somnath11som/webeF/internal/storage"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type Workspace struct {
	ID       string
	Cart     *cart.Store
	Session  *session.Store
	Discount *checkout.Discount
}

type Registry struct {
	mu         sync.RWMutex
	workspaces map[string]*Workspace
	lastSeen   map[string]time.Time
	now        func() time.Time

	kv     storage.KV
	logger *zap.Logger
	sfg    singleflight.Group
}

// NewRegistry keeps every visitor's durable session under "visitor:<id>" in kv.
func NewRegistry(kv storage.KV, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		workspaces: make(map[string]*Workspace),
		lastSeen:   make(map[string]time.Time),
		now:        time.Now,
		kv:         kv,
		logger:     logger,
	}
}

// Get returns the workspace for id, creating it on first use and restoring its
// session from durable storage. A failed restore leaves the visitor logged out.
func (r *Registry) Get(ctx context.Context, id string) *Workspace {
	r.mu.Lock()
	ws, ok := r.workspaces[id]
	if ok {
		r.lastSeen[id] = r.now()
	}
	r.mu.Unlock()
	if ok {
		return ws
	}

	v, _, _ := r.sfg.Do(id, func() (interface{}, error) {
		r.mu.RLock()
		existing, ok := r.workspaces[id]
		r.mu.RUnlock()
		if ok {
			return existing, nil
		}

		ws := &Workspace{
			ID:       id,
			Cart:     cart.NewStore(),
			Session:  session.NewStore(storage.Namespaced(r.kv, "visitor:"+id)),
			Discount: &checkout.Discount{},
		}
		if err := ws.Session.Restore(context.WithoutCancel(ctx)); err != nil {
			r.logger.Warn("restore session failed", zap.String("visitor_id", id), zap.Error(err))
		}

		r.mu.Lock()
		r.workspaces[id] = ws
		r.lastSeen[id] = r.now()
		r.mu.Unlock()
		return ws, nil
	})
	return v.(*Workspace)
}

// Forget drops the in-memory workspace. Durable session entries stay.
func (r *Registry) Forget(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forgetLocked(id)
}

func (r *Registry) forgetLocked(id string) {
	if ws, ok := r.workspaces[id]; ok {
		ws.Cart.Clear()
		delete(r.workspaces, id)
	}
	delete(r.lastSeen, id)
}

// Sweep forgets every workspace not touched by Get for longer than idle and
// returns how many were dropped.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()
	dropped := 0
	for id, seen := range r.lastSeen {
		if seen.Before(cutoff) {
			r.forgetLocked(id)
			dropped++
		}
	}
	return dropped
}

// Run sweeps idle workspaces every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(idle); n > 0 {
				r.logger.Debug("evicted idle visitors", zap.Int("count", n), zap.Int("remaining", r.Len()))
			}
		}
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.workspaces)
}
