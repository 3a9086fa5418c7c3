package deadlines

import (
	"sync"
)

// idAllocator hands out strictly increasing ids. The in-memory value always
// advances, so a failed save leaves a gap but never a duplicate.
type idAllocator struct {
	mu     sync.Mutex
	next   int
	loaded bool
	load   func() (int, error)
	save   func(next int) error
}

// ensureLoaded must be called with mu held. A failed load leaves the
// allocator unloaded so the next call retries.
func (a *idAllocator) ensureLoaded() error {
	if a.loaded {
		return nil
	}
	next, err := a.load()
	if err != nil {
		return err
	}
	a.next = next
	a.loaded = true
	return nil
}

func (a *idAllocator) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ensureLoaded()
}

// Next returns a fresh id. It returns 0 when the counter could not be
// loaded. A non-zero id with an error means only saving the counter failed;
// the id is still unique.
func (a *idAllocator) Next() (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureLoaded(); err != nil {
		return 0, err
	}
	id := a.next
	a.next++
	if err := a.save(a.next); err != nil {
		return id, err
	}
	return id, nil
}
