// Package tilecache provides a keyed, byte-budgeted LRU cache of decoded
// tile buffers with explicit reference accounting.
//
// Every buffer handed out by Get or Put is a borrowed reference that the
// caller must release exactly once, on every exit path. The cache keeps
// its own reference on each stored buffer; eviction drops only that
// reference, so a borrowed buffer stays valid until it is released, no
// matter when the cache decides to evict it.
package tilecache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
)

const (
	// DefaultBudget is the default cache size in bytes.
	DefaultBudget = 32 << 20

	// maxEntries is a structural bound on the LRU; the byte budget is
	// what actually governs eviction.
	maxEntries = 1 << 16

	// bytesPerWord is the in-memory size of one decoded pixel.
	bytesPerWord = 4
)

// A Key identifies a cached tile.
type Key struct {
	X     int64
	Y     int64
	Level int32
}

// entry is a cached tile buffer with its reference count. The count
// covers the cache's own reference plus every outstanding borrow.
type entry struct {
	cache *Cache
	key   Key
	data  []uint32
	size  int64
	refs  int32
}

// unref drops one reference, either a borrower's or the cache's own.
func (e *entry) unref() {
	if atomic.AddInt32(&e.refs, -1) < 0 {
		panic("tilecache: entry released more times than acquired")
	}
}

// A Ref is one borrowed reference to a cached tile buffer, as returned by
// Get and Put. Each Ref must be released exactly once.
type Ref struct {
	entry    *entry
	released int32
}

// Data returns the tile buffer. The buffer must be treated as read-only
// and must not be used after Release.
func (r *Ref) Data() []uint32 { return r.entry.data }

// Size returns the buffer size in bytes.
func (r *Ref) Size() int64 { return r.entry.size }

// Release drops the reference. Releasing a Ref more than once panics.
func (r *Ref) Release() {
	if !atomic.CompareAndSwapInt32(&r.released, 0, 1) {
		panic("tilecache: reference released twice")
	}
	atomic.AddInt64(&r.entry.cache.borrowed, -1)
	r.entry.unref()
}

// Stats holds point-in-time cache counters.
type Stats struct {
	Len       int
	Bytes     int64
	Budget    int64
	Hits      uint64
	Misses    uint64
	HitRate   float64
	Evictions uint64
}

// Cache is a keyed cache of decoded tile buffers. It is safe for
// concurrent lookup and insert from multiple goroutines. Its eviction is
// independent of borrowers: a buffer may leave the cache while borrowed
// and stays valid until the last reference is released.
type Cache struct {
	budget int64
	lru    *lru.Cache

	bytes    int64
	borrowed int64

	hits      uint64
	misses    uint64
	evictions uint64
}

// New returns a cache that evicts least-recently-used tiles once the total
// buffer size exceeds budget bytes. A budget <= 0 selects DefaultBudget.
func New(budget int64) *Cache {
	if budget <= 0 {
		budget = DefaultBudget
	}
	c := &Cache{budget: budget}
	// lru.NewWithEvict only fails on a non-positive size.
	c.lru, _ = lru.NewWithEvict(maxEntries, c.onEvict)
	return c
}

func (c *Cache) onEvict(_, value interface{}) {
	e := value.(*entry)
	atomic.AddInt64(&c.bytes, -e.size)
	atomic.AddUint64(&c.evictions, 1)
	e.unref()
}

// borrow hands out a new reference to e.
func (c *Cache) borrow(e *entry) *Ref {
	atomic.AddInt64(&c.borrowed, 1)
	return &Ref{entry: e}
}

// Get looks up the tile stored under k. On a hit it returns a borrowed
// reference that the caller must release.
func (c *Cache) Get(k Key) (*Ref, bool) {
	v, ok := c.lru.Get(k)
	if !ok {
		atomic.AddUint64(&c.misses, 1)
		return nil, false
	}
	e := v.(*entry)
	atomic.AddInt32(&e.refs, 1)
	atomic.AddUint64(&c.hits, 1)
	return c.borrow(e), true
}

// Put stores data under k and returns a borrowed reference to the
// now-cached buffer. The cache takes shared ownership of data; the caller
// must not modify it afterwards and must release the returned reference.
func (c *Cache) Put(k Key, data []uint32) *Ref {
	e := &entry{
		cache: c,
		key:   k,
		data:  data,
		size:  int64(len(data)) * bytesPerWord,
		refs:  2, // one for the cache, one for the caller
	}
	if ok, _ := c.lru.ContainsOrAdd(k, e); ok {
		// Lost a race against another insert of the same tile. The
		// buffer is still handed back borrowed, it just never entered
		// the cache.
		atomic.StoreInt32(&e.refs, 1)
		return c.borrow(e)
	}
	atomic.AddInt64(&c.bytes, e.size)
	for atomic.LoadInt64(&c.bytes) > c.budget {
		if _, _, ok := c.lru.RemoveOldest(); !ok {
			break
		}
	}
	return c.borrow(e)
}

// Purge drops every cached tile. Borrowed references stay valid until
// released.
func (c *Cache) Purge() {
	c.lru.Purge()
}

// Len returns the number of cached tiles.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Borrowed returns the number of outstanding borrowed references. It is
// zero once every reference obtained from Get and Put has been released;
// anything else is a reference leak in the caller.
func (c *Cache) Borrowed() int64 {
	return atomic.LoadInt64(&c.borrowed)
}

// Stats returns current cache counters.
func (c *Cache) Stats() Stats {
	hits := atomic.LoadUint64(&c.hits)
	misses := atomic.LoadUint64(&c.misses)

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Len:       c.lru.Len(),
		Bytes:     atomic.LoadInt64(&c.bytes),
		Budget:    c.budget,
		Hits:      hits,
		Misses:    misses,
		HitRate:   hitRate,
		Evictions: atomic.LoadUint64(&c.evictions),
	}
}
