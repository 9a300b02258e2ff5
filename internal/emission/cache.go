package emission

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"sync"
	"time"

	"supply-curves/internal/model"
)

// CalibrationKey identifies one calibration. Calibration is a pure function of
// these inputs, so equal keys always map to equal results.
type CalibrationKey struct {
	Constants          model.Constants
	StartingSupply     float64
	StartYear          int
	InitialRatePercent float64
}

type cacheEntry struct {
	result    model.CalibrationResult
	expiresAt time.Time
}

// Cache memoizes calibration results in memory for a TTL.
// Results are copied on the way in and out, so callers own what they get.
// A nil *Cache is valid and never hits.
type Cache struct {
	mu    sync.RWMutex
	store map[string]*cacheEntry
	ttl   time.Duration
	stop  chan struct{}
	once  sync.Once
}

// NewCache starts a cache whose entries expire after ttl.
// Call Close to stop the background sweep.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	c := &Cache{
		store: make(map[string]*cacheEntry),
		ttl:   ttl,
		stop:  make(chan struct{}),
	}
	go c.cleanup(5 * time.Minute)
	return c
}

func (c *Cache) Get(key CalibrationKey) (model.CalibrationResult, bool) {
	if c == nil {
		return model.CalibrationResult{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[GenerateCacheKey(key)]
	if !ok || time.Now().After(entry.expiresAt) {
		return model.CalibrationResult{}, false
	}
	return entry.result.Clone(), true
}

func (c *Cache) Set(key CalibrationKey, res model.CalibrationResult) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[GenerateCacheKey(key)] = &cacheEntry{
		result:    res.Clone(),
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Len reports the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

func (c *Cache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*cacheEntry)
}

func (c *Cache) Close() {
	if c == nil {
		return
	}
	c.once.Do(func() { close(c.stop) })
}

func (c *Cache) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.evictExpired(time.Now())
		}
	}
}

func (c *Cache) evictExpired(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.store {
		if now.After(entry.expiresAt) {
			delete(c.store, key)
		}
	}
}

// GenerateCacheKey hashes the inputs. Floats are formatted with full
// precision so distinct inputs never collide on rounding.
func GenerateCacheKey(k CalibrationKey) string {
	f := func(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
	c := k.Constants
	keyStr := fmt.Sprintf("%s:%d:%d:%d:%s:%d:%s|%s:%d:%s",
		f(c.SupplyCap),
		c.StepsPerYear,
		c.HorizonYears,
		c.BaseYear,
		f(c.InitialSupply),
		c.ReferenceExponent,
		f(c.CalibrationStep),
		f(k.StartingSupply),
		k.StartYear,
		f(k.InitialRatePercent),
	)

	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}
