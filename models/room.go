package models

import (
	"gorm.io/gorm"
)

// Room is the rentable unit. Gender-acceptance flags drive the search
// filter; both default to true.
type Room struct {
	gorm.Model

	RoomNumber string `json:"roomNumber" gorm:"column:room_number;type:varchar(50);not null"`
	Capacity   int    `json:"capacity"`
	Shared     bool   `json:"shared" gorm:"default:false"`
	PropertyID uint   `json:"propertyId" gorm:"column:property_id;index;not null"`

	AcceptMen   bool `json:"acceptMen" gorm:"column:accept_men;default:true;index"`
	AcceptWomen bool `json:"acceptWomen" gorm:"column:accept_women;default:true;index"`

	Property Property    `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Prices   []RoomPrice `json:"prices,omitempty" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	Photos   []RoomPhoto `json:"photos,omitempty" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
}

// RoomPrice is the price of a room for one rental period. At most one
// active row per (room, period) pair is expected.
type RoomPrice struct {
	gorm.Model

	RoomID uint    `json:"roomId" gorm:"column:room_id;not null;index:idx_room_price_period_room,priority:2"`
	Period Period  `json:"period" gorm:"type:varchar(10);default:'Semester';index:idx_room_price_period_room,priority:1"`
	Price  float64 `json:"price" gorm:"type:decimal(10,2)"`

	Room Room `json:"-" gorm:"foreignKey:RoomID"`
}

// RoomPhoto is a photo URL attached to a room.
type RoomPhoto struct {
	gorm.Model

	URL    string `json:"url" gorm:"type:varchar(512);not null"`
	RoomID uint   `json:"roomId" gorm:"column:room_id;index;not null"`

	Room Room `json:"-" gorm:"foreignKey:RoomID"`
}
