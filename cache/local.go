package cache

import (
	"time"

	"github.com/karlseguin/ccache/v3"
)

// Local is a per-process cache. Search entries share a key prefix so
// they can be dropped together without touching room details of other
// rooms.
type Local struct {
	cache *ccache.Cache[[]byte]
	ttl   time.Duration
}

// NewLocal builds a Local cache holding at most maxSize entries.
// defaultTTL applies when a Set is called with ttl <= 0.
func NewLocal(maxSize int64, defaultTTL time.Duration) *Local {
	if maxSize <= 0 {
		maxSize = 1000
	}
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	return &Local{
		cache: ccache.New(ccache.Configure[[]byte]().MaxSize(maxSize)),
		ttl:   defaultTTL,
	}
}

func (l *Local) get(key string) ([]byte, bool) {
	item := l.cache.Get(key)
	if item == nil || item.Expired() {
		return nil, false
	}
	return item.Value(), true
}

func (l *Local) set(key string, payload []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = l.ttl
	}
	l.cache.Set(key, payload, ttl)
}

func (l *Local) GetRoomDetail(roomID uint) ([]byte, bool) {
	return l.get(roomDetailKey(roomID))
}

func (l *Local) SetRoomDetail(roomID uint, payload []byte, ttl time.Duration) {
	l.set(roomDetailKey(roomID), payload, ttl)
}

func (l *Local) GetSearch(key string) ([]byte, bool) {
	return l.get(searchPrefix + key)
}

func (l *Local) SetSearch(key string, payload []byte, ttl time.Duration) {
	l.set(searchPrefix+key, payload, ttl)
}

func (l *Local) InvalidateRoom(roomID uint) {
	l.cache.Delete(roomDetailKey(roomID))
	l.cache.DeletePrefix(searchPrefix)
}

func (l *Local) Clear() {
	l.cache.Clear()
}
