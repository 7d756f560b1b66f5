package models

import (
	"gorm.io/gorm"
)

// Destination is a named geographic area (country down to
// neighborhood). Coordinates are optional; rooms whose destination has
// no coordinates are skipped by radius searches.
type Destination struct {
	gorm.Model

	Name                string          `json:"name" gorm:"type:varchar(255);not null"`
	CountryID           string          `json:"countryId" gorm:"column:country_id;type:varchar(2)"`
	DestinationType     DestinationType `json:"destinationType" gorm:"column:destination_type;type:varchar(2)"`
	ParentDestinationID *uint           `json:"parentDestinationId,omitempty" gorm:"column:parent_destination_id"`
	ImageURL            string          `json:"imageUrl,omitempty" gorm:"column:image_url;type:varchar(512)"`
	Latitude            *float64        `json:"latitude,omitempty"`
	Longitude           *float64        `json:"longitude,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are set.
func (d Destination) HasCoordinates() bool {
	return d.Latitude != nil && d.Longitude != nil
}
