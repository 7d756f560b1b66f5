package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/datatypes"

	"rental-backend/cache"
	"rental-backend/models"
	"rental-backend/repositories"
)

// EventPublisher fans room-changed notifications out to other
// instances so they can drop their process-local cache entries.
type EventPublisher interface {
	PublishRoomChanged(roomID uint) error
}

// ReviewDecision is a manager's verdict on a pending proposal.
type ReviewDecision string

const (
	DecisionAccept ReviewDecision = "accept"
	DecisionReject ReviewDecision = "reject"
)

// ParseDecision accepts the decision in any casing.
func ParseDecision(raw string) (ReviewDecision, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "accept":
		return DecisionAccept, true
	case "reject":
		return DecisionReject, true
	}
	return "", false
}

// SubmitInput is the renter-facing proposal payload. The identity
// fields create (or reuse) the renter's account and profile.
type SubmitInput struct {
	RoomID         uint
	StayInPeriod   int
	Email          string
	FullName       string
	CPF            string
	BirthDate      string
	Gender         string
	MoveDate       string
	SuggestedPrice float64
	Message        string
}

// ProposalDetail is the GET /proposal/:id payload.
type ProposalDetail struct {
	ProposalID    uint    `json:"proposal_id"`
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	CPF           string  `json:"cpf"`
	BirthDate     string  `json:"birth_date"`
	Gender        string  `json:"gender"`
	RoomID        uint    `json:"room_id"`
	RoomNumber    string  `json:"room_number"`
	Property      string  `json:"property"`
	ProposedPrice float64 `json:"proposed_price"`
	Period        string  `json:"period"`
	MoveInDate    string  `json:"move_in_date"`
	MoveOutDate   string  `json:"move_out_date"`
	Message       string  `json:"message"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"created_at"`
}

// ProposalService owns the proposal lifecycle: submit, review into a
// rental, expire.
type ProposalService struct {
	Rooms     repositories.RoomRepository
	Proposals repositories.ProposalRepository
	Profiles  repositories.ProfileRepository
	Cache     cache.RoomCache
	Events    EventPublisher // optional
}

func NewProposalService(
	rooms repositories.RoomRepository,
	proposals repositories.ProposalRepository,
	profiles repositories.ProfileRepository,
	c cache.RoomCache,
	events EventPublisher,
) *ProposalService {
	if c == nil {
		c = cache.Noop{}
	}
	return &ProposalService{
		Rooms:     rooms,
		Proposals: proposals,
		Profiles:  profiles,
		Cache:     c,
		Events:    events,
	}
}

// Submit creates a Pending proposal for a room. The renter's account
// and profile are created on first contact, keyed by e-mail.
func (s *ProposalService) Submit(in SubmitInput) (*models.Proposal, error) {
	if strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.FullName) == "" {
		return nil, fmt.Errorf("%w: email and fullName are required", ErrMissingField)
	}

	room, err := s.Rooms.GetByID(in.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, fmt.Errorf("%w: id %d", ErrRoomNotFound, in.RoomID)
	}

	period, ok := models.PeriodFromDuration(in.StayInPeriod)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported stay period %d", ErrInvalidPeriod, in.StayInPeriod)
	}

	moveIn, err := time.Parse("2006-01-02", in.MoveDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, in.MoveDate)
	}
	moveOut := moveIn.AddDate(0, 0, in.StayInPeriod)

	profile, err := s.ensureRenter(in)
	if err != nil {
		return nil, err
	}

	proposal := &models.Proposal{
		ProfileID:     profile.ID,
		RoomID:        room.ID,
		ProposedPrice: in.SuggestedPrice,
		Period:        period,
		MoveInDate:    datatypes.Date(moveIn),
		MoveOutDate:   datatypes.Date(moveOut),
		Message:       in.Message,
		Status:        models.StatusPending,
	}
	if err := s.Proposals.Create(proposal); err != nil {
		return nil, err
	}
	return proposal, nil
}

// ensureRenter finds or creates the account+profile pair for the
// submitting renter. A lost creation race against a concurrent submit
// resolves by re-reading the winner's row.
func (s *ProposalService) ensureRenter(in SubmitInput) (*models.Profile, error) {
	account, err := s.Profiles.AccountByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		account = &models.Account{Username: in.Email, Email: in.Email}
		if err := s.Profiles.SaveAccount(account); err != nil {
			if isDuplicateKey(err) {
				if account, err = s.Profiles.AccountByEmail(in.Email); err != nil {
					return nil, err
				}
				if account == nil {
					return nil, ErrDuplicateIdentity
				}
			} else {
				return nil, fmt.Errorf("failed to create account: %w", err)
			}
		}
	}

	profile, err := s.Profiles.ProfileByAccount(account.ID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	gender, ok := models.ParseGender(in.Gender)
	if !ok {
		return nil, fmt.Errorf("%w: gender %q", ErrInvalidChoice, in.Gender)
	}

	profile = &models.Profile{
		AccountID: &account.ID,
		Name:      in.FullName,
		CPF:       in.CPF,
		Gender:    gender,
		Role:      models.RoleClient,
	}
	if in.BirthDate != "" {
		birth, err := time.Parse("2006-01-02", in.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, in.BirthDate)
		}
		profile.BirthDate = datatypes.Date(birth)
	}
	if err := s.Profiles.SaveProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Review applies a manager decision to a Pending proposal. The status
// flip is a compare-and-swap inside one transaction, so of two
// concurrent reviews exactly one wins; the rental's unique proposal
// index backs that up at the storage layer.
func (s *ProposalService) Review(proposalID uint, decision ReviewDecision, reviewerProfileID *uint) (*models.Proposal, error) {
	var reviewed *models.Proposal

	err := s.Proposals.InTransaction(func(repo repositories.ProposalRepository) error {
		proposal, err := repo.GetByID(proposalID)
		if err != nil {
			return err
		}
		if proposal == nil {
			return fmt.Errorf("%w: id %d", ErrProposalNotFound, proposalID)
		}

		target := models.StatusRejected
		if decision == DecisionAccept {
			target = models.StatusAccepted
		}

		swapped, err := repo.TransitionStatus(proposalID, models.StatusPending, target, reviewerProfileID)
		if err != nil {
			return err
		}
		if !swapped {
			return fmt.Errorf("%w: proposal %d is %s", ErrAlreadyReviewed, proposalID, proposal.Status)
		}

		if decision == DecisionAccept {
			rental := &models.Rental{
				ProposalID:        proposal.ID,
				ProfileID:         proposal.ProfileID,
				RoomID:            proposal.RoomID,
				StartDate:         &proposal.MoveInDate,
				EndDate:           &proposal.MoveOutDate,
				Period:            proposal.Period,
				ExpectedStartDate: &proposal.MoveInDate,
				ExpectedEndDate:   &proposal.MoveOutDate,
			}
			if err := repo.CreateRental(rental); err != nil {
				if isDuplicateKey(err) {
					return fmt.Errorf("%w: rental already exists for proposal %d", ErrAlreadyReviewed, proposalID)
				}
				return err
			}
		}

		proposal.Status = target
		proposal.ReviewedByID = reviewerProfileID
		reviewed = proposal
		return nil
	})
	if err != nil {
		return nil, err
	}

	// A new rental changes the room's availability.
	if decision == DecisionAccept {
		s.notifyRoomChanged(reviewed.RoomID)
	}
	return reviewed, nil
}

// ExpireStale flips Pending proposals whose move-in date has passed to
// Expired and returns how many were touched.
func (s *ProposalService) ExpireStale(now time.Time) (int64, error) {
	return s.Proposals.ExpireBefore(now)
}

// GetProposal returns the detail record for one proposal.
func (s *ProposalService) GetProposal(proposalID uint) (*ProposalDetail, error) {
	proposal, err := s.Proposals.GetByID(proposalID)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, fmt.Errorf("%w: id %d", ErrProposalNotFound, proposalID)
	}

	email := ""
	if proposal.Profile.Account != nil {
		email = proposal.Profile.Account.Email
	}

	return &ProposalDetail{
		ProposalID:    proposal.ID,
		FullName:      proposal.Profile.Name,
		Email:         email,
		CPF:           proposal.Profile.CPF,
		BirthDate:     formatDate(proposal.Profile.BirthDate),
		Gender:        string(proposal.Profile.Gender),
		RoomID:        proposal.RoomID,
		RoomNumber:    proposal.Room.RoomNumber,
		Property:      proposal.Room.Property.Name,
		ProposedPrice: proposal.ProposedPrice,
		Period:        string(proposal.Period),
		MoveInDate:    formatDate(proposal.MoveInDate),
		MoveOutDate:   formatDate(proposal.MoveOutDate),
		Message:       proposal.Message,
		Status:        string(proposal.Status),
		CreatedAt:     proposal.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

func (s *ProposalService) notifyRoomChanged(roomID uint) {
	s.Cache.InvalidateRoom(roomID)
	if s.Events != nil {
		if err := s.Events.PublishRoomChanged(roomID); err != nil {
			log.Printf("warning: failed to publish room change for %d: %v", roomID, err)
		}
	}
}

func formatDate(d datatypes.Date) string {
	t := time.Time(d)
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique")
}
