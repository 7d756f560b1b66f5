package models

// ProposalStatus is the review state of a proposal. A proposal leaves
// Pending exactly once.
type ProposalStatus string

const (
	StatusPending  ProposalStatus = "Pending"
	StatusAccepted ProposalStatus = "Accepted"
	StatusRejected ProposalStatus = "Rejected"
	StatusExpired  ProposalStatus = "Expired"
)

// Gender of a renter profile.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// ParseGender accepts the stored values plus the lowercase forms the
// search API uses. Empty input is valid and means "unspecified".
func ParseGender(raw string) (Gender, bool) {
	switch raw {
	case "":
		return "", true
	case "MALE", "male":
		return GenderMale, true
	case "FEMALE", "female":
		return GenderFemale, true
	}
	return "", false
}

// Role of a profile.
type Role string

const (
	RoleClient  Role = "CLIENT"
	RoleManager Role = "MANAGER"
)

// ParseRole validates the closed role set.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleClient, RoleManager:
		return Role(raw), true
	}
	return "", false
}

// DestinationType classifies a destination by granularity.
type DestinationType string

const (
	DestinationCountry      DestinationType = "CT"
	DestinationState        DestinationType = "ST"
	DestinationCity         DestinationType = "CI"
	DestinationNeighborhood DestinationType = "NB"
)

// PropertyType classifies a property.
type PropertyType string

const (
	PropertyRepublic      PropertyType = "Republic"
	PropertyBoardingHouse PropertyType = "BoardingHouse"
	PropertyHotel         PropertyType = "Hotel"
)
