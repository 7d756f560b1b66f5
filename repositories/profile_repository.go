package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"rental-backend/models"
)

// ProfileRepository is the persistence port for the identity records
// (accounts, profiles, addresses). Lookups return (nil, nil) when the
// record does not exist.
type ProfileRepository interface {
	AccountByID(id uint) (*models.Account, error)
	AccountByEmail(email string) (*models.Account, error)
	AccountTaken(username, email string, excludeID uint) (bool, error)
	SaveAccount(a *models.Account) error
	ProfileByAccount(accountID uint) (*models.Profile, error)
	SaveProfile(p *models.Profile) error
	SaveAddress(a *models.Address) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) AccountByID(id uint) (*models.Account, error) {
	var a models.Account
	if err := r.db.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load account %d: %w", id, err)
	}
	return &a, nil
}

func (r *profileRepository) AccountByEmail(email string) (*models.Account, error) {
	var a models.Account
	if err := r.db.Where("email = ?", email).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load account by email: %w", err)
	}
	return &a, nil
}

func (r *profileRepository) AccountTaken(username, email string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Account{}).
		Where("(username = ? OR email = ?) AND id <> ?", username, email, excludeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check account uniqueness: %w", err)
	}
	return count > 0, nil
}

func (r *profileRepository) SaveAccount(a *models.Account) error {
	if err := r.db.Save(a).Error; err != nil {
		return err
	}
	return nil
}

func (r *profileRepository) ProfileByAccount(accountID uint) (*models.Profile, error) {
	var p models.Profile
	err := r.db.Preload("Address").Where("account_id = ?", accountID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load profile for account %d: %w", accountID, err)
	}
	return &p, nil
}

func (r *profileRepository) SaveProfile(p *models.Profile) error {
	if err := r.db.Save(p).Error; err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (r *profileRepository) SaveAddress(a *models.Address) error {
	if err := r.db.Save(a).Error; err != nil {
		return fmt.Errorf("failed to save address: %w", err)
	}
	return nil
}
