package singleton

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"weak"
)

// Cache memoizes constructed instances of T by a key derived from the
// constructor arguments. Entries hold only weak ownership: once every strong
// holder drops an instance, its entry disappears and a later call with the
// same key constructs anew.
//
// Each Cache owns an independent key space, so key collisions are only
// possible within the same type.
type Cache[T any] struct {
	mu      sync.Mutex
	entries map[string]weak.Pointer[T]
	ctor    func(args ...any) *T
}

// New creates a cache around the given constructor.
// The constructor must not be nil, otherwise it panics.
func New[T any](ctor func(args ...any) *T) *Cache[T] {
	if ctor == nil {
		panic("singleton: constructor must not be nil")
	}
	return &Cache[T]{
		entries: make(map[string]weak.Pointer[T]),
		ctor:    ctor,
	}
}

// Get returns the instance cached under the key derived from args,
// constructing it when absent. Two calls with the same key return the same
// pointer as long as any strong reference to the instance exists.
func (c *Cache[T]) Get(args ...any) *T {
	return c.get(Key(args, nil), args)
}

// GetKeyed behaves like Get but also folds named arguments into the key,
// mirroring keyword-style construction. Named keys are appended in sorted
// order so the derived key is deterministic.
func (c *Cache[T]) GetKeyed(kwargs map[string]any, args ...any) *T {
	return c.get(Key(args, kwargs), args)
}

// Len reports the number of live entries. Entries whose instance has died but
// whose cleanup has not run yet are still counted.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache[T]) get(key string, args []any) *T {
	c.mu.Lock()
	defer c.mu.Unlock()

	if wp, ok := c.entries[key]; ok {
		if p := wp.Value(); p != nil {
			return p
		}
	}

	p := c.ctor(args...)
	if p == nil {
		return nil
	}
	wp := weak.Make(p)
	c.entries[key] = wp
	// Remove the entry once the instance has no strong holders left. The
	// stored pointer is compared so a fresh instance that reused the key in
	// the meantime is never evicted by a stale cleanup.
	runtime.AddCleanup(p, func(k string) { c.drop(k, wp) }, key)
	return p
}

func (c *Cache[T]) drop(key string, wp weak.Pointer[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.entries[key]; ok && cur == wp {
		delete(c.entries, key)
	}
}

// Key derives the cache key: the textual form of each positional argument in
// order, followed by the sorted names of the keyword arguments, concatenated
// without separators. Distinct argument tuples that stringify identically
// collide by design.
func Key(args []any, kwargs map[string]any) string {
	var b strings.Builder
	for _, a := range args {
		fmt.Fprintf(&b, "%v", a)
	}
	if len(kwargs) > 0 {
		names := make([]string, 0, len(kwargs))
		for name := range kwargs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b.WriteString(name)
		}
	}
	return b.String()
}
