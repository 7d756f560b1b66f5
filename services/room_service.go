package services

import (
	"encoding/json"
	"fmt"
	"time"

	"rental-backend/cache"
	"rental-backend/repositories"
)

const roomDetailCacheTTL = 10 * time.Minute

// PriceEntry is one price row on a room detail: the label shown to
// renters plus the raw period for clients that key on it.
type PriceEntry struct {
	Period    string  `json:"period"`
	RawPeriod string  `json:"raw_period"`
	Price     float64 `json:"price"`
}

// RoomDetail is the full GET /room/:id payload.
type RoomDetail struct {
	RoomID        uint            `json:"room_id"`
	RoomNumber    string          `json:"room_number"`
	Property      string          `json:"property"`
	PropertyRules string          `json:"property_rules"`
	Capacity      int             `json:"capacity"`
	Address       AddressInfo     `json:"address"`
	Destination   DestinationInfo `json:"destination"`
	Prices        []PriceEntry    `json:"prices"`
	AcceptMen     bool            `json:"accept_men"`
	AcceptWomen   bool            `json:"accept_women"`
	Shared        bool            `json:"shared"`
	Photos        []string        `json:"photos"`
	Features      []string        `json:"features"`
}

// RoomService assembles room details, read-through cached per room.
type RoomService struct {
	Rooms repositories.RoomRepository
	Cache cache.RoomCache
}

func NewRoomService(rooms repositories.RoomRepository, c cache.RoomCache) *RoomService {
	if c == nil {
		c = cache.Noop{}
	}
	return &RoomService{Rooms: rooms, Cache: c}
}

// GetRoom returns the detail record for one room.
func (s *RoomService) GetRoom(roomID uint) (*RoomDetail, error) {
	if payload, hit := s.Cache.GetRoomDetail(roomID); hit {
		var cached RoomDetail
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
	}

	room, err := s.Rooms.GetByID(roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, fmt.Errorf("%w: id %d", ErrRoomNotFound, roomID)
	}

	ids := []uint{room.ID}

	prices, err := s.Rooms.PricesByRoom(ids, nil)
	if err != nil {
		return nil, err
	}
	priceList := make([]PriceEntry, 0, len(prices))
	for _, p := range prices {
		priceList = append(priceList, PriceEntry{
			Period:    p.Period.Label(),
			RawPeriod: string(p.Period),
			Price:     p.Price,
		})
	}

	photos, err := s.Rooms.PhotosByRoom(ids)
	if err != nil {
		return nil, err
	}
	photoList := make([]string, 0, len(photos))
	for _, ph := range photos {
		photoList = append(photoList, ph.URL)
	}

	features, err := s.Rooms.FeaturesByRoom(ids)
	if err != nil {
		return nil, err
	}
	featureList := make([]string, 0, len(features))
	for _, rf := range features {
		featureList = append(featureList, rf.Feature.Name)
	}

	detail := &RoomDetail{
		RoomID:        room.ID,
		RoomNumber:    room.RoomNumber,
		Property:      room.Property.Name,
		PropertyRules: room.Property.Rules,
		Capacity:      room.Capacity,
		Address:       addressInfo(room.Property.Address),
		Destination:   destinationInfo(room.Property.Destination),
		Prices:        priceList,
		AcceptMen:     room.AcceptMen,
		AcceptWomen:   room.AcceptWomen,
		Shared:        room.Shared,
		Photos:        photoList,
		Features:      featureList,
	}

	if payload, err := json.Marshal(detail); err == nil {
		s.Cache.SetRoomDetail(roomID, payload, roomDetailCacheTTL)
	}

	return detail, nil
}
