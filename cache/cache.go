package cache

import (
	"fmt"
	"time"
)

// RoomCache is the caching port the services talk through. Values are
// JSON payloads so shared backends can store them as-is. Every
// room-affecting write must call InvalidateRoom (or Clear as the
// coarse fallback); search entries are dropped on any invalidation
// because any room change can move a room in or out of result sets.
type RoomCache interface {
	GetRoomDetail(roomID uint) ([]byte, bool)
	SetRoomDetail(roomID uint, payload []byte, ttl time.Duration)
	GetSearch(key string) ([]byte, bool)
	SetSearch(key string, payload []byte, ttl time.Duration)
	InvalidateRoom(roomID uint)
	Clear()
}

const searchPrefix = "search_"

func roomDetailKey(roomID uint) string {
	return fmt.Sprintf("room_details_%d", roomID)
}

// Noop satisfies RoomCache without caching anything. Used when caching
// is disabled and in tests that don't care about cache behavior.
type Noop struct{}

func (Noop) GetRoomDetail(uint) ([]byte, bool)            { return nil, false }
func (Noop) SetRoomDetail(uint, []byte, time.Duration)    {}
func (Noop) GetSearch(string) ([]byte, bool)              { return nil, false }
func (Noop) SetSearch(string, []byte, time.Duration)      {}
func (Noop) InvalidateRoom(uint)                          {}
func (Noop) Clear()                                       {}
