package cache

import (
	"bytes"
	"testing"
	"time"
)

func TestLocal_RoomDetailRoundTrip(t *testing.T) {
	c := NewLocal(100, time.Minute)

	if _, hit := c.GetRoomDetail(1); hit {
		t.Fatal("Expected miss on empty cache")
	}

	payload := []byte(`{"room_id":1}`)
	c.SetRoomDetail(1, payload, time.Minute)

	got, hit := c.GetRoomDetail(1)
	if !hit {
		t.Fatal("Expected hit after set")
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Expected %s, got %s", payload, got)
	}
}

func TestLocal_SearchRoundTrip(t *testing.T) {
	c := NewLocal(100, time.Minute)

	c.SetSearch("Biweek_1_male_", []byte(`[]`), time.Minute)
	if _, hit := c.GetSearch("Biweek_1_male_"); !hit {
		t.Error("Expected hit for stored search key")
	}
	if _, hit := c.GetSearch("Biweek_2_male_"); hit {
		t.Error("Expected miss for different search key")
	}
}

func TestLocal_InvalidateRoomDropsDetailAndSearches(t *testing.T) {
	c := NewLocal(100, time.Minute)

	c.SetRoomDetail(1, []byte(`{"room_id":1}`), time.Minute)
	c.SetRoomDetail(2, []byte(`{"room_id":2}`), time.Minute)
	c.SetSearch("Biweek_1_male_", []byte(`[]`), time.Minute)
	c.SetSearch("Month_0__", []byte(`[]`), time.Minute)

	c.InvalidateRoom(1)

	if _, hit := c.GetRoomDetail(1); hit {
		t.Error("Expected room 1 detail dropped")
	}
	if _, hit := c.GetRoomDetail(2); !hit {
		t.Error("Expected room 2 detail kept")
	}
	if _, hit := c.GetSearch("Biweek_1_male_"); hit {
		t.Error("Expected search entries dropped")
	}
	if _, hit := c.GetSearch("Month_0__"); hit {
		t.Error("Expected all search entries dropped")
	}
}

func TestLocal_Clear(t *testing.T) {
	c := NewLocal(100, time.Minute)

	c.SetRoomDetail(1, []byte(`{}`), time.Minute)
	c.SetSearch("Biweek_0__", []byte(`[]`), time.Minute)
	c.Clear()

	if _, hit := c.GetRoomDetail(1); hit {
		t.Error("Expected empty cache after Clear")
	}
	if _, hit := c.GetSearch("Biweek_0__"); hit {
		t.Error("Expected empty cache after Clear")
	}
}

func TestLocal_DefaultTTLWhenZero(t *testing.T) {
	c := NewLocal(100, time.Minute)

	// ttl <= 0 falls back to the default instead of storing expired
	c.SetRoomDetail(1, []byte(`{}`), 0)
	if _, hit := c.GetRoomDetail(1); !hit {
		t.Error("Expected entry stored with default TTL")
	}
}

func TestLocal_ExpiredEntryIsMiss(t *testing.T) {
	c := NewLocal(100, time.Minute)

	c.SetRoomDetail(1, []byte(`{}`), time.Nanosecond)
	time.Sleep(5 * time.Millisecond)
	if _, hit := c.GetRoomDetail(1); hit {
		t.Error("Expected expired entry to miss")
	}
}
