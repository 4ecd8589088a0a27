package cache

import "sync"

// DefaultCapacity bounds the vector cache when no capacity is configured.
const DefaultCapacity = 1000

// VectorCache is a thread-safe, capacity-bounded memoizing cache for
// embedding vectors keyed by normalized text. The cache is idempotent (the
// same text always yields the same vector), so concurrent fills for the same
// key race benignly: last write wins.
type VectorCache struct {
	mu       sync.RWMutex
	capacity int
	data     map[string][]float64
}

// NewVectorCache creates a vector cache holding at most capacity entries.
func NewVectorCache(capacity int) *VectorCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &VectorCache{
		capacity: capacity,
		data:     make(map[string][]float64, capacity),
	}
}

// Get retrieves the vector for key, reporting whether it was present.
func (c *VectorCache) Get(key string) ([]float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	vec, ok := c.data[key]
	return vec, ok
}

// Set stores a vector. When the cache is full an arbitrary entry is evicted;
// entries are equally cheap to recompute so victim choice does not matter.
func (c *VectorCache) Set(key string, vector []float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.data[key]; !exists && len(c.data) >= c.capacity {
		for victim := range c.data {
			delete(c.data, victim)
			break
		}
	}

	c.data[key] = vector
}

// Size returns the current number of cached vectors.
func (c *VectorCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear removes all cached vectors.
func (c *VectorCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]float64, c.capacity)
}
