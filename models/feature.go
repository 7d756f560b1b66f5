package models

import (
	"gorm.io/gorm"
)

// Feature is a reusable amenity tag (WiFi, private bathroom, ...).
type Feature struct {
	gorm.Model

	Name string `json:"name" gorm:"type:varchar(100);not null"`
}

// RoomFeature attaches a feature to a room.
type RoomFeature struct {
	gorm.Model

	RoomID    uint `json:"roomId" gorm:"column:room_id;index;not null"`
	FeatureID uint `json:"featureId" gorm:"column:feature_id;index;not null"`

	Room    Room    `json:"-" gorm:"foreignKey:RoomID"`
	Feature Feature `json:"feature,omitempty" gorm:"foreignKey:FeatureID"`
}
