package database

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/shopworks/storefront/internal/config"
	"github.com/shopworks/storefront/internal/model"
)

// SeedAdmin creates the admin account when ADMIN_PASSWORD is configured and
// no account with the admin email exists yet. Registering through the form
// with the admin email works too; this is a convenience for fresh databases.
func SeedAdmin(db *gorm.DB, cfg config.Config) error {
	if cfg.AdminPassword == "" {
		return nil
	}

	var existing model.Customer
	err := db.Where("email = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		log.Println("Admin account already exists")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	admin := model.Customer{
		Email:    cfg.AdminEmail,
		Username: "admin",
		Role:     model.RoleAdmin,
	}
	if err := admin.SetPassword(cfg.AdminPassword); err != nil {
		return err
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("Seeded admin account %s", cfg.AdminEmail)
	return nil
}
