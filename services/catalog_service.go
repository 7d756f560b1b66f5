package services

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"rental-backend/cache"
	"rental-backend/models"
)

// CatalogService is the manager-side write path for destinations,
// properties, rooms and room dependents. Every write that can change
// what a renter sees invalidates the affected room entries; that is
// the single choke point replacing per-model invalidation hooks.
type CatalogService struct {
	DB     *gorm.DB
	Cache  cache.RoomCache
	Events EventPublisher // optional
}

func NewCatalogService(db *gorm.DB, c cache.RoomCache, events EventPublisher) *CatalogService {
	if c == nil {
		c = cache.Noop{}
	}
	return &CatalogService{DB: db, Cache: c, Events: events}
}

func (s *CatalogService) invalidate(roomIDs ...uint) {
	for _, id := range roomIDs {
		s.Cache.InvalidateRoom(id)
		if s.Events != nil {
			if err := s.Events.PublishRoomChanged(id); err != nil {
				log.Printf("warning: failed to publish room change for %d: %v", id, err)
			}
		}
	}
}

// roomIDsOfProperty lists the rooms whose cached entries a property
// write affects.
func (s *CatalogService) roomIDsOfProperty(propertyID uint) []uint {
	var ids []uint
	if err := s.DB.Model(&models.Room{}).Where("property_id = ?", propertyID).Pluck("id", &ids).Error; err != nil {
		log.Printf("warning: failed to list rooms of property %d: %v", propertyID, err)
	}
	return ids
}

// ---- Destinations ----

func (s *CatalogService) ListDestinations() ([]models.Destination, error) {
	var destinations []models.Destination
	if err := s.DB.Find(&destinations).Error; err != nil {
		return nil, fmt.Errorf("failed to list destinations: %w", err)
	}
	return destinations, nil
}

func (s *CatalogService) CreateDestination(d *models.Destination) error {
	if err := s.DB.Create(d).Error; err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}
	return nil
}

// ---- Properties ----

func (s *CatalogService) CreateProperty(p *models.Property) error {
	var destination models.Destination
	if err := s.DB.First(&destination, p.DestinationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: destination %d", ErrMissingField, p.DestinationID)
		}
		return fmt.Errorf("db error checking destination %d: %w", p.DestinationID, err)
	}
	if err := s.DB.Create(p).Error; err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

func (s *CatalogService) UpdateProperty(id uint, updates map[string]interface{}) error {
	delete(updates, "id")
	delete(updates, "created_at")
	delete(updates, "updated_at")
	delete(updates, "deleted_at")

	res := s.DB.Model(&models.Property{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update property %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: property %d", ErrNotFound, id)
	}
	s.invalidate(s.roomIDsOfProperty(id)...)
	return nil
}

func (s *CatalogService) DeleteProperty(id uint) error {
	rooms := s.roomIDsOfProperty(id)
	res := s.DB.Delete(&models.Property{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete property %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: property %d", ErrNotFound, id)
	}
	if len(rooms) > 0 {
		if err := s.DB.Where("property_id = ?", id).Delete(&models.Room{}).Error; err != nil {
			log.Printf("warning: failed to cascade rooms of property %d: %v", id, err)
		}
	}
	s.invalidate(rooms...)
	return nil
}

// ---- Rooms ----

func (s *CatalogService) CreateRoom(room *models.Room) error {
	var property models.Property
	if err := s.DB.First(&property, room.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: property %d", ErrMissingField, room.PropertyID)
		}
		return fmt.Errorf("db error checking property %d: %w", room.PropertyID, err)
	}
	if err := s.DB.Create(room).Error; err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	// A new room can show up in cached searches.
	s.invalidate(room.ID)
	return nil
}

func (s *CatalogService) UpdateRoom(id uint, updates map[string]interface{}) error {
	delete(updates, "id")
	delete(updates, "created_at")
	delete(updates, "updated_at")
	delete(updates, "deleted_at")

	res := s.DB.Model(&models.Room{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update room %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: room %d", ErrRoomNotFound, id)
	}
	s.invalidate(id)
	return nil
}

func (s *CatalogService) DeleteRoom(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Room{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete room %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: room %d", ErrRoomNotFound, id)
		}
		for _, dependent := range []interface{}{
			&models.RoomPrice{}, &models.RoomPhoto{}, &models.RoomFeature{},
		} {
			if err := tx.Where("room_id = ?", id).Delete(dependent).Error; err != nil {
				return fmt.Errorf("failed to cascade room %d dependents: %w", id, err)
			}
		}
		s.invalidate(id)
		return nil
	})
}

// ---- Prices ----

// SetRoomPrice creates or replaces the price for (room, period). One
// active row per pair is the expectation the search engine relies on.
func (s *CatalogService) SetRoomPrice(roomID uint, period models.Period, price float64) (*models.RoomPrice, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("%w: period %q", ErrInvalidPeriod, period)
	}
	if err := s.ensureRoom(roomID); err != nil {
		return nil, err
	}

	var entry models.RoomPrice
	err := s.DB.Where("room_id = ? AND period = ?", roomID, period).First(&entry).Error
	switch {
	case err == nil:
		entry.Price = price
		if err := s.DB.Save(&entry).Error; err != nil {
			return nil, fmt.Errorf("failed to update price: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		entry = models.RoomPrice{RoomID: roomID, Period: period, Price: price}
		if err := s.DB.Create(&entry).Error; err != nil {
			return nil, fmt.Errorf("failed to create price: %w", err)
		}
	default:
		return nil, fmt.Errorf("db error loading price: %w", err)
	}
	s.invalidate(roomID)
	return &entry, nil
}

func (s *CatalogService) DeleteRoomPrice(roomID uint, period models.Period) error {
	res := s.DB.Where("room_id = ? AND period = ?", roomID, period).Delete(&models.RoomPrice{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete price: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: no %s price for room %d", ErrNotFound, period, roomID)
	}
	s.invalidate(roomID)
	return nil
}

// ---- Photos ----

func (s *CatalogService) AddRoomPhoto(roomID uint, url string) (*models.RoomPhoto, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: url", ErrMissingField)
	}
	if err := s.ensureRoom(roomID); err != nil {
		return nil, err
	}
	photo := models.RoomPhoto{RoomID: roomID, URL: url}
	if err := s.DB.Create(&photo).Error; err != nil {
		return nil, fmt.Errorf("failed to create photo: %w", err)
	}
	s.invalidate(roomID)
	return &photo, nil
}

func (s *CatalogService) DeleteRoomPhoto(photoID uint) error {
	var photo models.RoomPhoto
	if err := s.DB.First(&photo, photoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: photo %d", ErrNotFound, photoID)
		}
		return fmt.Errorf("db error loading photo %d: %w", photoID, err)
	}
	if err := s.DB.Delete(&photo).Error; err != nil {
		return fmt.Errorf("failed to delete photo %d: %w", photoID, err)
	}
	s.invalidate(photo.RoomID)
	return nil
}

// ---- Features ----

func (s *CatalogService) CreateFeature(name string) (*models.Feature, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name", ErrMissingField)
	}
	var feature models.Feature
	err := s.DB.Where("name = ?", name).First(&feature).Error
	if err == nil {
		return &feature, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("db error loading feature: %w", err)
	}
	feature = models.Feature{Name: name}
	if err := s.DB.Create(&feature).Error; err != nil {
		return nil, fmt.Errorf("failed to create feature: %w", err)
	}
	return &feature, nil
}

func (s *CatalogService) AddRoomFeature(roomID, featureID uint) (*models.RoomFeature, error) {
	if err := s.ensureRoom(roomID); err != nil {
		return nil, err
	}
	var feature models.Feature
	if err := s.DB.First(&feature, featureID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: feature %d", ErrMissingField, featureID)
		}
		return nil, fmt.Errorf("db error loading feature %d: %w", featureID, err)
	}
	link := models.RoomFeature{RoomID: roomID, FeatureID: featureID}
	if err := s.DB.Create(&link).Error; err != nil {
		return nil, fmt.Errorf("failed to attach feature: %w", err)
	}
	s.invalidate(roomID)
	return &link, nil
}

func (s *CatalogService) RemoveRoomFeature(roomID, featureID uint) error {
	res := s.DB.Where("room_id = ? AND feature_id = ?", roomID, featureID).Delete(&models.RoomFeature{})
	if res.Error != nil {
		return fmt.Errorf("failed to detach feature: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: feature %d on room %d", ErrNotFound, featureID, roomID)
	}
	s.invalidate(roomID)
	return nil
}

func (s *CatalogService) ensureRoom(roomID uint) error {
	var room models.Room
	if err := s.DB.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id %d", ErrRoomNotFound, roomID)
		}
		return fmt.Errorf("db error checking room %d: %w", roomID, err)
	}
	return nil
}
