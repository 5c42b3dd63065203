package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Customer is a registered account. The single admin account carries
// RoleAdmin, assigned at registration when its email matches the configured
// admin address.
type Customer struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"size:200;unique;not null"`
	Username     string `gorm:"size:100;unique;not null"`
	PasswordHash string `gorm:"size:60;not null"`
	Role         string `gorm:"size:20;default:'customer';not null"`
	DateJoined   time.Time
	CartLines    []CartLine `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Orders       []Order    `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

// SetPassword stores a bcrypt hash; the plaintext is never persisted.
func (c *Customer) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	c.PasswordHash = string(hash)
	return nil
}

// VerifyPassword reports whether plain matches the stored hash.
func (c *Customer) VerifyPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(plain)) == nil
}

func (c *Customer) IsAdmin() bool {
	return c.Role == RoleAdmin
}
