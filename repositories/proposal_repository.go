package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"rental-backend/models"
)

// ProposalRepository is the persistence port for proposals and the
// rentals created from them. TransitionStatus is a compare-and-swap:
// the update lands only while the current status still equals `from`,
// which is what keeps two concurrent reviews from both winning.
type ProposalRepository interface {
	Create(p *models.Proposal) error
	GetByID(id uint) (*models.Proposal, error)
	TransitionStatus(id uint, from, to models.ProposalStatus, reviewedBy *uint) (bool, error)
	CreateRental(r *models.Rental) error
	ExpireBefore(cutoff time.Time) (int64, error)
	InTransaction(fn func(ProposalRepository) error) error
}

type proposalRepository struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &proposalRepository{db: db}
}

func (r *proposalRepository) Create(p *models.Proposal) error {
	if err := r.db.Create(p).Error; err != nil {
		return fmt.Errorf("failed to create proposal: %w", err)
	}
	return nil
}

func (r *proposalRepository) GetByID(id uint) (*models.Proposal, error) {
	var p models.Proposal
	err := r.db.
		Preload("Profile.Account").
		Preload("Room.Property").
		First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load proposal %d: %w", id, err)
	}
	return &p, nil
}

func (r *proposalRepository) TransitionStatus(id uint, from, to models.ProposalStatus, reviewedBy *uint) (bool, error) {
	updates := map[string]interface{}{"status": to}
	if reviewedBy != nil {
		updates["reviewed_by_id"] = *reviewedBy
	}
	res := r.db.Model(&models.Proposal{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, fmt.Errorf("failed to transition proposal %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *proposalRepository) CreateRental(rental *models.Rental) error {
	if err := r.db.Create(rental).Error; err != nil {
		return fmt.Errorf("failed to create rental: %w", err)
	}
	return nil
}

func (r *proposalRepository) ExpireBefore(cutoff time.Time) (int64, error) {
	res := r.db.Model(&models.Proposal{}).
		Where("status = ? AND move_in_date < ?", models.StatusPending, cutoff.Format("2006-01-02")).
		Update("status", models.StatusExpired)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to expire proposals: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *proposalRepository) InTransaction(fn func(ProposalRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&proposalRepository{db: tx})
	})
}
