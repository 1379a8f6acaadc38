package dedupe

import (
	"sync"
	"time"

	"github.com/jiwoolab/naver-top-news/internal/models"
)

type entry struct {
	link string
	ts   time.Time
}

type item struct {
	enrichment models.Enrichment
	ts         time.Time
}

// Cache keeps recently enriched articles keyed by link so that
// interval runs do not refetch an article page whose top spot has not
// changed since the previous pass.
type Cache struct {
	mu       sync.Mutex
	items    map[string]item
	order    []entry
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

// NewCache creates a cache with the provided capacity and ttl.
func NewCache(capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = 1
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cache{
		items:    make(map[string]item, capacity),
		order:    make([]entry, 0, capacity),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

// SetClock pins the clock used for ttl checks.
func (c *Cache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Get returns the cached enrichment for link when it is still inside
// the ttl window.
func (c *Cache) Get(link string) (models.Enrichment, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.items[link]
	if !ok || c.now().Sub(it.ts) > c.ttl {
		return models.Enrichment{}, false
	}
	return it.enrichment, true
}

// Put records the enrichment for link, evicting expired and
// over-capacity entries oldest first.
func (c *Cache) Put(link string, enr models.Enrichment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.items[link] = item{enrichment: enr, ts: now}
	c.order = append(c.order, entry{link: link, ts: now})
	c.compact(now)
}

func (c *Cache) compact(now time.Time) {
	cutoff := now.Add(-c.ttl)

	for len(c.order) > 0 && (len(c.items) > c.capacity || c.order[0].ts.Before(cutoff)) {
		oldest := c.order[0]
		c.order = c.order[1:]

		if it, ok := c.items[oldest.link]; ok {
			if it.ts.Equal(oldest.ts) {
				delete(c.items, oldest.link)
			}
		}
	}
}
