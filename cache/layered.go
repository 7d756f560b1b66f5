package cache

import (
	"errors"
	"log"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// Layered is a two-level cache: a per-process Local in front of a
// shared memcached. Memcached failures are logged and treated as
// misses; a cold cache only costs a query.
type Layered struct {
	local     *Local
	memcached *memcache.Client
	sharedTTL int32
}

// NewLayered wires a Local front cache to the memcached instance at
// host. sharedTTL is the lifetime of shared entries.
func NewLayered(local *Local, host string, sharedTTL time.Duration) *Layered {
	if sharedTTL <= 0 {
		sharedTTL = 15 * time.Minute
	}
	log.Printf("cache: layered cache using memcached at %s", host)
	return &Layered{
		local:     local,
		memcached: memcache.New(host),
		sharedTTL: int32(sharedTTL / time.Second),
	}
}

func (c *Layered) get(key string, localHit func() ([]byte, bool), promote func([]byte)) ([]byte, bool) {
	if payload, ok := localHit(); ok {
		return payload, true
	}
	item, err := c.memcached.Get(key)
	if err != nil {
		if !errors.Is(err, memcache.ErrCacheMiss) {
			log.Printf("cache: memcached get failed for %s: %v", key, err)
		}
		return nil, false
	}
	promote(item.Value)
	return item.Value, true
}

func (c *Layered) set(key string, payload []byte) {
	if err := c.memcached.Set(&memcache.Item{Key: key, Value: payload, Expiration: c.sharedTTL}); err != nil {
		log.Printf("cache: memcached set failed for %s: %v", key, err)
	}
}

func (c *Layered) delete(key string) {
	if err := c.memcached.Delete(key); err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		log.Printf("cache: memcached delete failed for %s: %v", key, err)
	}
}

func (c *Layered) GetRoomDetail(roomID uint) ([]byte, bool) {
	key := roomDetailKey(roomID)
	return c.get(key,
		func() ([]byte, bool) { return c.local.GetRoomDetail(roomID) },
		func(p []byte) { c.local.SetRoomDetail(roomID, p, 0) },
	)
}

func (c *Layered) SetRoomDetail(roomID uint, payload []byte, ttl time.Duration) {
	c.local.SetRoomDetail(roomID, payload, ttl)
	c.set(roomDetailKey(roomID), payload)
}

func (c *Layered) GetSearch(key string) ([]byte, bool) {
	return c.get(searchPrefix+key,
		func() ([]byte, bool) { return c.local.GetSearch(key) },
		func(p []byte) { c.local.SetSearch(key, p, 0) },
	)
}

func (c *Layered) SetSearch(key string, payload []byte, ttl time.Duration) {
	c.local.SetSearch(key, payload, ttl)
	c.set(searchPrefix+key, payload)
}

// InvalidateRoom drops the room's detail entry from both levels.
// Search entries cannot be enumerated in memcached, so the shared
// level is flushed wholesale; the local level drops only the search
// prefix.
func (c *Layered) InvalidateRoom(roomID uint) {
	c.local.InvalidateRoom(roomID)
	c.delete(roomDetailKey(roomID))
	if err := c.memcached.FlushAll(); err != nil {
		log.Printf("cache: memcached flush failed: %v", err)
	}
}

func (c *Layered) Clear() {
	c.local.Clear()
	if err := c.memcached.FlushAll(); err != nil {
		log.Printf("cache: memcached flush failed: %v", err)
	}
}
