package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"rental-backend/models"
)

// SearchFilter is the storage-level portion of a room search: the
// period-priced candidate set, optionally scoped to a destination,
// gender acceptance and a move-in date.
type SearchFilter struct {
	Period        models.Period
	DestinationID *uint
	Gender        models.Gender // empty means no gender filter
	AvailableOn   *time.Time    // nil skips the availability stage
}

// RoomRepository is the persistence port for rooms and their
// dependents. Search applies every storage-side filter in a single
// query so the surviving set comes from one snapshot.
type RoomRepository interface {
	Search(f SearchFilter) ([]models.Room, error)
	GetByID(id uint) (*models.Room, error)
	PricesByRoom(roomIDs []uint, period *models.Period) ([]models.RoomPrice, error)
	PhotosByRoom(roomIDs []uint) ([]models.RoomPhoto, error)
	FeaturesByRoom(roomIDs []uint) ([]models.RoomFeature, error)
}

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) Search(f SearchFilter) ([]models.Room, error) {
	priced := r.db.Model(&models.RoomPrice{}).
		Select("room_id").
		Where("period = ?", f.Period)

	q := r.db.Model(&models.Room{}).
		Where("rooms.id IN (?)", priced).
		Preload("Property.Address").
		Preload("Property.Destination")

	if f.DestinationID != nil {
		scoped := r.db.Model(&models.Property{}).
			Select("id").
			Where("destination_id = ?", *f.DestinationID)
		q = q.Where("rooms.property_id IN (?)", scoped)
	}

	switch f.Gender {
	case models.GenderMale:
		q = q.Where("rooms.accept_men = ?", true)
	case models.GenderFemale:
		q = q.Where("rooms.accept_women = ?", true)
	}

	if f.AvailableOn != nil {
		day := f.AvailableOn.Format("2006-01-02")
		occupied := r.db.Model(&models.Rental{}).
			Select("room_id").
			Where("start_date <= ? AND end_date >= ?", day, day)
		q = q.Where("rooms.id NOT IN (?)", occupied)
	}

	var rooms []models.Room
	if err := q.Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to search rooms: %w", err)
	}
	return rooms, nil
}

func (r *roomRepository) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.
		Preload("Property.Address").
		Preload("Property.Destination").
		First(&room, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load room %d: %w", id, err)
	}
	return &room, nil
}

func (r *roomRepository) PricesByRoom(roomIDs []uint, period *models.Period) ([]models.RoomPrice, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}
	q := r.db.Where("room_id IN ?", roomIDs)
	if period != nil {
		q = q.Where("period = ?", *period)
	}
	var prices []models.RoomPrice
	if err := q.Find(&prices).Error; err != nil {
		return nil, fmt.Errorf("failed to load room prices: %w", err)
	}
	return prices, nil
}

func (r *roomRepository) PhotosByRoom(roomIDs []uint) ([]models.RoomPhoto, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}
	var photos []models.RoomPhoto
	if err := r.db.Where("room_id IN ?", roomIDs).Find(&photos).Error; err != nil {
		return nil, fmt.Errorf("failed to load room photos: %w", err)
	}
	return photos, nil
}

func (r *roomRepository) FeaturesByRoom(roomIDs []uint) ([]models.RoomFeature, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}
	var features []models.RoomFeature
	err := r.db.Preload("Feature").Where("room_id IN ?", roomIDs).Find(&features).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load room features: %w", err)
	}
	return features, nil
}
