package cache

import "sync"

// Generations counts invalidations per resource family. A reader captures the
// generation before loading and stores its result only if no invalidation of
// that family ran in between, so a load racing a write never repopulates the
// cache with the pre-write value.
type Generations struct {
	mu  sync.Mutex
	gen map[string]uint64
}

func NewGenerations() *Generations {
	return &Generations{gen: make(map[string]uint64)}
}

func (g *Generations) Current(family string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.gen[family]
}

// Bump must run before the family's keys are deleted.
func (g *Generations) Bump(family string) {
	g.mu.Lock()
	g.gen[family]++
	g.mu.Unlock()
}

// StoreIf runs store only while family is still at generation seen. The check
// and the store happen under one lock so a concurrent Bump lands either before
// (store skipped) or after (the stored key gets deleted).
func (g *Generations) StoreIf(family string, seen uint64, store func() error) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.gen[family] != seen {
		return false, nil
	}

	return true, store()
}
