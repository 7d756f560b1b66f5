package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Rental is a confirmed occupancy created from an accepted proposal.
// The unique index on ProposalID enforces the one-to-one relation: a
// proposal turns into a rental at most once. Start/end are filled from
// the proposal on acceptance so availability search excludes the room
// immediately; move-in confirmation may later adjust them, which is
// why they are nullable. A room is unavailable at date D when a rental
// for it has start_date <= D <= end_date.
type Rental struct {
	gorm.Model

	ProposalID uint            `json:"proposalId" gorm:"column:proposal_id;uniqueIndex;not null"`
	ProfileID  uint            `json:"profileId" gorm:"column:profile_id;index;not null"`
	RoomID     uint            `json:"roomId" gorm:"column:room_id;not null;index:idx_rental_room_dates,priority:1"`
	StartDate  *datatypes.Date `json:"startDate,omitempty" gorm:"column:start_date;index:idx_rental_room_dates,priority:2"`
	EndDate    *datatypes.Date `json:"endDate,omitempty" gorm:"column:end_date;index:idx_rental_room_dates,priority:3"`
	Period     Period          `json:"period" gorm:"type:varchar(10);default:'Semester'"`

	ExpectedStartDate *datatypes.Date `json:"expectedStartDate,omitempty" gorm:"column:expected_start_date"`
	ExpectedEndDate   *datatypes.Date `json:"expectedEndDate,omitempty" gorm:"column:expected_end_date"`

	Proposal Proposal `json:"proposal,omitempty" gorm:"foreignKey:ProposalID;constraint:OnDelete:CASCADE"`
	Profile  Profile  `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
	Room     Room     `json:"room,omitempty" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
}
