// Package lazy models the image lazy-loading capability: register a callback
// per target, fire it exactly once on first visibility, then deregister.
package lazy

import "sync"

type Observer struct {
	mu      sync.Mutex
	pending map[string]func()
}

func NewObserver() *Observer {
	return &Observer{
		pending: make(map[string]func()),
	}
}

// Register tracks a target. A second registration for the same target
// replaces the earlier callback.
func (o *Observer) Register(id string, fn func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending[id] = fn
}

// MarkVisible fires the target's callback the first time it is reported
// visible and deregisters it. Later reports for the same target are no-ops,
// so the call is idempotent.
func (o *Observer) MarkVisible(id string) bool {
	o.mu.Lock()
	fn, ok := o.pending[id]
	if ok {
		delete(o.pending, id)
	}
	o.mu.Unlock()

	if !ok {
		return false
	}
	fn()
	return true
}

// Pending reports how many targets are still awaiting visibility.
func (o *Observer) Pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.pending)
}
