package cache

import (
	"errors"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const megabyte = 1024 * 1024

// PlanCache is a read-through cache in front of the shared plans document.
// Values are the JSON encoding of a single base-day plan.
type PlanCache struct {
	cache     *freecache.Cache
	expireSec int
}

func NewPlanCache(sizeMB, expireSec int) *PlanCache {
	if sizeMB <= 0 {
		sizeMB = 1
	}
	return &PlanCache{
		// freecache enforces a 512KB minimum on its own
		cache:     freecache.NewCache(sizeMB * megabyte),
		expireSec: expireSec,
	}
}

func (c *PlanCache) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get([]byte(key))
	if err != nil {
		if !errors.Is(err, freecache.ErrNotFound) {
			log.Warnf("plan cache get [%s]: %s", key, err)
		}
		return nil, false
	}
	return val, true
}

func (c *PlanCache) Set(key string, value []byte) {
	if err := c.cache.Set([]byte(key), value, c.expireSec); err != nil {
		log.Warnf("plan cache set [%s]: %s", key, err)
	}
}

func (c *PlanCache) Del(key string) bool {
	return c.cache.Del([]byte(key))
}

func (c *PlanCache) Clear() {
	c.cache.Clear()
}

func (c *PlanCache) Len() int64 {
	return c.cache.EntryCount()
}
