package services

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"rental-backend/models"
	"rental-backend/repositories"
)

// AddressInput is the optional address block on user payloads.
type AddressInput struct {
	Street       string `json:"street" binding:"required"`
	Number       string `json:"number" binding:"required"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood" binding:"required"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	ZipCode      string `json:"zipCode" binding:"required"`
}

// UserInput carries account + profile fields for create and update.
type UserInput struct {
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	Password  string        `json:"password"`
	Name      string        `json:"name"`
	BirthDate string        `json:"birthDate"`
	CPF       string        `json:"cpf"`
	Gender    string        `json:"gender"`
	Role      string        `json:"role"`
	Address   *AddressInput `json:"address"`
}

// ProfileService owns the identity records: accounts with hashed
// passwords and the profiles hanging off them.
type ProfileService struct {
	Profiles repositories.ProfileRepository
}

func NewProfileService(profiles repositories.ProfileRepository) *ProfileService {
	return &ProfileService{Profiles: profiles}
}

func (s *ProfileService) validateChoices(in UserInput) (models.Gender, models.Role, error) {
	gender, ok := models.ParseGender(in.Gender)
	if !ok {
		return "", "", fmt.Errorf("%w: gender %q", ErrInvalidChoice, in.Gender)
	}
	role, ok := models.ParseRole(in.Role)
	if !ok {
		return "", "", fmt.Errorf("%w: role %q", ErrInvalidChoice, in.Role)
	}
	return gender, role, nil
}

// CreateUser registers an account and its profile. Username and email
// must be unique across accounts.
func (s *ProfileService) CreateUser(in UserInput) (*models.Profile, error) {
	if strings.TrimSpace(in.Username) == "" || strings.TrimSpace(in.Email) == "" ||
		in.Password == "" || strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: username, email, password and name are required", ErrMissingField)
	}

	taken, err := s.Profiles.AccountTaken(in.Username, in.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: username or email already in use", ErrDuplicateIdentity)
	}

	gender, role, err := s.validateChoices(in)
	if err != nil {
		return nil, err
	}

	birth, err := time.Parse("2006-01-02", in.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, in.BirthDate)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hash),
	}
	if err := s.Profiles.SaveAccount(account); err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: username or email already in use", ErrDuplicateIdentity)
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	profile := &models.Profile{
		AccountID: &account.ID,
		Name:      in.Name,
		BirthDate: datatypes.Date(birth),
		CPF:       in.CPF,
		Gender:    gender,
		Role:      role,
	}
	if in.Address != nil {
		address := newAddress(*in.Address)
		if err := s.Profiles.SaveAddress(address); err != nil {
			return nil, err
		}
		profile.AddressID = &address.ID
		profile.Address = address
	}
	if err := s.Profiles.SaveProfile(profile); err != nil {
		return nil, err
	}
	profile.Account = account
	return profile, nil
}

// UpdateUser rewrites an existing account and profile. Password is
// only touched when supplied.
func (s *ProfileService) UpdateUser(accountID uint, in UserInput) (*models.Profile, error) {
	account, err := s.Profiles.AccountByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: account %d", ErrUserNotFound, accountID)
	}

	profile, err := s.Profiles.ProfileByAccount(account.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: account %d has no profile", ErrUserNotFound, accountID)
	}

	taken, err := s.Profiles.AccountTaken(in.Username, in.Email, account.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: username or email already in use", ErrDuplicateIdentity)
	}

	gender, role, err := s.validateChoices(in)
	if err != nil {
		return nil, err
	}

	birth, err := time.Parse("2006-01-02", in.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, in.BirthDate)
	}

	account.Username = in.Username
	account.Email = in.Email
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		account.Password = string(hash)
	}
	if err := s.Profiles.SaveAccount(account); err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: username or email already in use", ErrDuplicateIdentity)
		}
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	if in.Address != nil {
		if profile.Address != nil {
			applyAddress(profile.Address, *in.Address)
			if err := s.Profiles.SaveAddress(profile.Address); err != nil {
				return nil, err
			}
		} else {
			address := newAddress(*in.Address)
			if err := s.Profiles.SaveAddress(address); err != nil {
				return nil, err
			}
			profile.AddressID = &address.ID
			profile.Address = address
		}
	}

	profile.Name = in.Name
	profile.BirthDate = datatypes.Date(birth)
	profile.CPF = in.CPF
	profile.Gender = gender
	profile.Role = role
	if err := s.Profiles.SaveProfile(profile); err != nil {
		return nil, err
	}
	profile.Account = account
	return profile, nil
}

func newAddress(in AddressInput) *models.Address {
	a := &models.Address{}
	applyAddress(a, in)
	return a
}

func applyAddress(a *models.Address, in AddressInput) {
	a.Street = in.Street
	a.Number = in.Number
	a.Complement = in.Complement
	a.Neighborhood = in.Neighborhood
	a.City = in.City
	a.State = in.State
	a.ZipCode = in.ZipCode
}
