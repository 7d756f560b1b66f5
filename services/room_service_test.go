package services

import (
	"errors"
	"testing"

	"rental-backend/models"
)

func TestGetRoom_NotFound(t *testing.T) {
	svc := NewRoomService(newMockRoomRepository(), nil)

	detail, err := svc.GetRoom(42)
	if !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("Expected ErrRoomNotFound, got %v", err)
	}
	if detail != nil {
		t.Error("Expected nil detail, got detail")
	}
}

func TestGetRoom_AssemblesDetail(t *testing.T) {
	repo := newMockRoomRepository()
	room := makeRoom(1, 1, &uspLesteLat, &uspLesteLon, true, false)
	room.Capacity = 2
	room.Property.Rules = "No pets."
	repo.addRoom(room)
	repo.addPrice(1, models.PeriodBiweek, 500)
	repo.addPrice(1, models.PeriodMonth, 900)
	repo.photos = append(repo.photos, models.RoomPhoto{RoomID: 1, URL: "https://photos.example.com/1.jpg"})
	repo.features = append(repo.features, models.RoomFeature{
		RoomID:  1,
		Feature: models.Feature{Name: "WiFi"},
	})
	svc := NewRoomService(repo, nil)

	detail, err := svc.GetRoom(1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if detail.RoomID != 1 || detail.Capacity != 2 {
		t.Errorf("Unexpected detail header: %+v", detail)
	}
	if detail.PropertyRules != "No pets." {
		t.Errorf("Expected property rules, got %q", detail.PropertyRules)
	}
	if len(detail.Prices) != 2 {
		t.Fatalf("Expected 2 price entries, got %d", len(detail.Prices))
	}
	for _, p := range detail.Prices {
		if p.RawPeriod == "Biweek" && p.Period != "Biweekly" {
			t.Errorf("Expected Biweekly label, got %q", p.Period)
		}
	}
	if len(detail.Photos) != 1 || detail.Photos[0] != "https://photos.example.com/1.jpg" {
		t.Errorf("Unexpected photos: %v", detail.Photos)
	}
	if len(detail.Features) != 1 || detail.Features[0] != "WiFi" {
		t.Errorf("Unexpected features: %v", detail.Features)
	}
}

func TestGetRoom_ServesCachedDetail(t *testing.T) {
	repo := newMockRoomRepository()
	repo.addRoom(makeRoom(1, 1, &uspLesteLat, &uspLesteLon, true, true))
	c := newRecordingCache()
	svc := NewRoomService(repo, c)

	if _, err := svc.GetRoom(1); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, ok := c.details[1]; !ok {
		t.Fatal("Expected room detail to be cached")
	}

	repo.mu.Lock()
	delete(repo.rooms, 1)
	repo.mu.Unlock()

	detail, err := svc.GetRoom(1)
	if err != nil {
		t.Fatalf("Expected cached detail, got %v", err)
	}
	if detail.RoomID != 1 {
		t.Errorf("Expected room 1 from cache, got %d", detail.RoomID)
	}

	c.InvalidateRoom(1)
	if _, err := svc.GetRoom(1); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("Expected ErrRoomNotFound after invalidation, got %v", err)
	}
}
