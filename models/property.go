package models

import (
	"gorm.io/gorm"
)

// Property is a physical building containing rooms, located at a
// destination. Address is optional (the destination's coordinates are
// what radius search uses).
type Property struct {
	gorm.Model

	Name          string       `json:"name" gorm:"type:varchar(255);not null"`
	Type          PropertyType `json:"type" gorm:"type:varchar(20)"`
	Rules         string       `json:"rules" gorm:"type:text"`
	AddressID     *uint        `json:"addressId,omitempty" gorm:"column:address_id"`
	DestinationID uint         `json:"destinationId" gorm:"column:destination_id;index;not null"`

	Address     *Address    `json:"address,omitempty" gorm:"foreignKey:AddressID"`
	Destination Destination `json:"destination,omitempty" gorm:"foreignKey:DestinationID"`
	Rooms       []Room      `json:"rooms,omitempty" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}

// PropertyManager links a manager profile to a property it manages.
type PropertyManager struct {
	gorm.Model

	ProfileID  uint `json:"profileId" gorm:"column:profile_id;index;not null"`
	PropertyID uint `json:"propertyId" gorm:"column:property_id;index;not null"`

	Profile  Profile  `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
	Property Property `json:"property,omitempty" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}
