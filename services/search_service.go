package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"rental-backend/cache"
	"rental-backend/models"
	"rental-backend/repositories"
)

// DefaultSearchRadiusKm bounds geo-radius searches when the caller
// does not supply a radius.
const DefaultSearchRadiusKm = 10.0

const searchCacheTTL = 5 * time.Minute

// SearchQuery carries the renter's search. StayDuration is required;
// everything else silently skips its filter stage when absent.
type SearchQuery struct {
	StayDuration  int
	DestinationID *uint
	Gender        string
	MoveDate      string
	Latitude      *float64
	Longitude     *float64
	RadiusKm      float64
}

// AddressInfo mirrors the response shape: explicit nulls when the
// property has no address.
type AddressInfo struct {
	Street       *string `json:"street"`
	Number       *string `json:"number"`
	Neighborhood *string `json:"neighborhood"`
	City         *string `json:"city"`
	State        *string `json:"state"`
}

// DestinationInfo is the destination slice of a result record.
type DestinationInfo struct {
	Name string   `json:"name"`
	Lat  *float64 `json:"lat"`
	Lon  *float64 `json:"lon"`
}

// RoomSearchResult is one row of a search response.
type RoomSearchResult struct {
	RoomID      uint            `json:"room_id"`
	RoomNumber  string          `json:"room_number"`
	Property    string          `json:"property"`
	Address     AddressInfo     `json:"address"`
	Destination DestinationInfo `json:"destination"`
	Price       float64         `json:"price"`
	Period      string          `json:"period"`
	AcceptMen   bool            `json:"accept_men"`
	AcceptWomen bool            `json:"accept_women"`
	Shared      bool            `json:"shared"`
	Photos      []string        `json:"photos"`
	Features    []string        `json:"features"`
}

// SearchService runs the room search pipeline: period resolution,
// storage-side filtering, geo-radius post-filter, result assembly.
type SearchService struct {
	Rooms repositories.RoomRepository
	Cache cache.RoomCache
}

func NewSearchService(rooms repositories.RoomRepository, c cache.RoomCache) *SearchService {
	if c == nil {
		c = cache.Noop{}
	}
	return &SearchService{Rooms: rooms, Cache: c}
}

// Search returns every room matching the query. Results carry no
// ordering promise; callers treat the list as a set.
func (s *SearchService) Search(q SearchQuery) ([]RoomSearchResult, error) {
	period, ok := models.PeriodFromDuration(q.StayDuration)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported stay duration %d", ErrInvalidPeriod, q.StayDuration)
	}

	var availableOn *time.Time
	if q.MoveDate != "" {
		d, err := time.Parse("2006-01-02", q.MoveDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, q.MoveDate)
		}
		availableOn = &d
	}

	key := s.cacheKey(q, period)
	if payload, hit := s.Cache.GetSearch(key); hit {
		var cached []RoomSearchResult
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, nil
		}
		log.Printf("search: dropping undecodable cache entry %s", key)
	}

	gender, _ := models.ParseGender(q.Gender)

	rooms, err := s.Rooms.Search(repositories.SearchFilter{
		Period:        period,
		DestinationID: q.DestinationID,
		Gender:        gender,
		AvailableOn:   availableOn,
	})
	if err != nil {
		return nil, err
	}

	if q.Latitude != nil && q.Longitude != nil {
		rooms = filterByRadius(rooms, *q.Latitude, *q.Longitude, q.RadiusKm)
	}

	results, err := s.assemble(rooms, period)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(results); err == nil {
		s.Cache.SetSearch(key, payload, searchCacheTTL)
	}

	return results, nil
}

func (s *SearchService) cacheKey(q SearchQuery, period models.Period) string {
	destID := uint(0)
	if q.DestinationID != nil {
		destID = *q.DestinationID
	}
	key := fmt.Sprintf("%s_%d_%s_%s", period, destID, q.Gender, q.MoveDate)
	if q.Latitude != nil && q.Longitude != nil {
		key = fmt.Sprintf("%s_%.6f_%.6f_%.2f", key, *q.Latitude, *q.Longitude, q.RadiusKm)
	}
	return key
}

// filterByRadius keeps rooms whose property's destination lies within
// radiusKm of the given point. Destinations without coordinates are
// skipped rather than treated as matches.
func filterByRadius(rooms []models.Room, lat, lon, radiusKm float64) []models.Room {
	if radiusKm <= 0 {
		radiusKm = DefaultSearchRadiusKm
	}
	kept := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		dest := room.Property.Destination
		if !dest.HasCoordinates() {
			continue
		}
		if Haversine(lat, lon, *dest.Latitude, *dest.Longitude) <= radiusKm {
			kept = append(kept, room)
		}
	}
	return kept
}

func (s *SearchService) assemble(rooms []models.Room, period models.Period) ([]RoomSearchResult, error) {
	ids := make([]uint, 0, len(rooms))
	for _, room := range rooms {
		ids = append(ids, room.ID)
	}

	prices, err := s.Rooms.PricesByRoom(ids, &period)
	if err != nil {
		return nil, err
	}
	priceByRoom := make(map[uint]float64, len(prices))
	for _, p := range prices {
		if _, seen := priceByRoom[p.RoomID]; !seen {
			priceByRoom[p.RoomID] = p.Price
		}
	}

	photos, err := s.Rooms.PhotosByRoom(ids)
	if err != nil {
		return nil, err
	}
	photosByRoom := make(map[uint][]string)
	for _, ph := range photos {
		photosByRoom[ph.RoomID] = append(photosByRoom[ph.RoomID], ph.URL)
	}

	features, err := s.Rooms.FeaturesByRoom(ids)
	if err != nil {
		return nil, err
	}
	featuresByRoom := make(map[uint][]string)
	for _, rf := range features {
		featuresByRoom[rf.RoomID] = append(featuresByRoom[rf.RoomID], rf.Feature.Name)
	}

	results := make([]RoomSearchResult, 0, len(rooms))
	for _, room := range rooms {
		photoList := photosByRoom[room.ID]
		if photoList == nil {
			photoList = []string{}
		}
		featureList := featuresByRoom[room.ID]
		if featureList == nil {
			featureList = []string{}
		}
		results = append(results, RoomSearchResult{
			RoomID:      room.ID,
			RoomNumber:  room.RoomNumber,
			Property:    room.Property.Name,
			Address:     addressInfo(room.Property.Address),
			Destination: destinationInfo(room.Property.Destination),
			// 0.0 when no price row matches the period; a defined
			// fallback, not an error.
			Price:       priceByRoom[room.ID],
			Period:      period.Label(),
			AcceptMen:   room.AcceptMen,
			AcceptWomen: room.AcceptWomen,
			Shared:      room.Shared,
			Photos:      photoList,
			Features:    featureList,
		})
	}
	return results, nil
}

func addressInfo(addr *models.Address) AddressInfo {
	if addr == nil {
		return AddressInfo{}
	}
	return AddressInfo{
		Street:       &addr.Street,
		Number:       &addr.Number,
		Neighborhood: &addr.Neighborhood,
		City:         &addr.City,
		State:        &addr.State,
	}
}

func destinationInfo(dest models.Destination) DestinationInfo {
	return DestinationInfo{
		Name: dest.Name,
		Lat:  dest.Latitude,
		Lon:  dest.Longitude,
	}
}
