package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Proposal is a renter's request to rent a room. It is created Pending
// and mutated only through status transitions; once a review decision
// or expiry lands it is terminal.
type Proposal struct {
	gorm.Model

	ProfileID     uint           `json:"profileId" gorm:"column:profile_id;index;not null"`
	RoomID        uint           `json:"roomId" gorm:"column:room_id;index;not null"`
	ProposedPrice float64        `json:"proposedPrice" gorm:"column:proposed_price;type:decimal(10,2)"`
	Period        Period         `json:"period" gorm:"type:varchar(10);default:'Semester'"`
	MoveInDate    datatypes.Date `json:"moveInDate" gorm:"column:move_in_date"`
	MoveOutDate   datatypes.Date `json:"moveOutDate" gorm:"column:move_out_date"`
	Message       string         `json:"message" gorm:"type:text"`
	Status        ProposalStatus `json:"status" gorm:"type:varchar(10);default:'Pending';index"`
	ReviewedByID  *uint          `json:"reviewedById,omitempty" gorm:"column:reviewed_by_id"`

	Profile    Profile  `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
	Room       Room     `json:"room,omitempty" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	ReviewedBy *Profile `json:"reviewedBy,omitempty" gorm:"foreignKey:ReviewedByID"`
}
