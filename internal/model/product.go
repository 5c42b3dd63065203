package model

import "time"

// Product is a catalog entry. Quantity is the units in stock and must never
// go negative; only the admin account may create, update, or delete products.
type Product struct {
	ID           uint    `gorm:"primaryKey"`
	Name         string  `gorm:"size:100;unique;not null"`
	Price        float64 `gorm:"not null"`
	Description  string  `gorm:"size:1024;not null"`
	Quantity     int     `gorm:"not null"`
	ProductImage string  `gorm:"size:1000;not null"`
	DateAdded    time.Time
	CartLines    []CartLine `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Orders       []Order    `gorm:"foreignKey:ProductID"`
}
