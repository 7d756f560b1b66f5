package services

import "errors"

// Sentinel error kinds surfaced to callers. The strings double as the
// machine-readable kind in failure responses; the HTTP translation
// lives in utils.JSONFail so every handler maps them the same way.
var (
	ErrInvalidPeriod     = errors.New("invalid_period")
	ErrInvalidDate       = errors.New("invalid_date")
	ErrInvalidDecision   = errors.New("invalid_decision")
	ErrInvalidChoice     = errors.New("invalid_choice")
	ErrMissingField      = errors.New("missing_field")
	ErrRoomNotFound      = errors.New("room_not_found")
	ErrProposalNotFound  = errors.New("proposal_not_found")
	ErrUserNotFound      = errors.New("user_not_found")
	ErrNotFound          = errors.New("not_found")
	ErrAlreadyReviewed   = errors.New("already_reviewed")
	ErrDuplicateIdentity = errors.New("duplicate_identity")
)
