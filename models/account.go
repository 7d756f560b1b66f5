package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Address is a street address, used by properties and profiles.
type Address struct {
	gorm.Model

	Street       string `json:"street" gorm:"type:varchar(255)"`
	Number       string `json:"number" gorm:"type:varchar(20)"`
	Complement   string `json:"complement,omitempty" gorm:"type:varchar(255)"`
	Neighborhood string `json:"neighborhood" gorm:"type:varchar(255)"`
	City         string `json:"city" gorm:"type:varchar(255)"`
	State        string `json:"state" gorm:"type:varchar(2)"`
	ZipCode      string `json:"zipCode" gorm:"column:zip_code;type:varchar(15)"`
}

// Account holds the login identity. Passwords are stored as bcrypt
// hashes and never serialized.
type Account struct {
	gorm.Model

	Username string `json:"username" gorm:"type:varchar(150);uniqueIndex;not null"`
	Email    string `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password string `json:"-" gorm:"type:varchar(255)"`
}

// Profile is the person behind an account: a renter (CLIENT) or a
// property manager (MANAGER).
type Profile struct {
	gorm.Model

	AccountID *uint          `json:"accountId,omitempty" gorm:"column:account_id;index"`
	Name      string         `json:"name" gorm:"type:varchar(255);not null"`
	BirthDate datatypes.Date `json:"birthDate" gorm:"column:birth_date"`
	CPF       string         `json:"cpf,omitempty" gorm:"column:cpf;type:varchar(14)"`
	Gender    Gender         `json:"gender,omitempty" gorm:"type:varchar(10)"`
	Role      Role           `json:"role" gorm:"type:varchar(10)"`
	AddressID *uint          `json:"addressId,omitempty" gorm:"column:address_id"`

	Account *Account `json:"account,omitempty" gorm:"foreignKey:AccountID"`
	Address *Address `json:"address,omitempty" gorm:"foreignKey:AddressID"`
}
