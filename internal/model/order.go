package model

import "time"

// OrderStatus is the delivery state of an order. Only the admin account may
// move an order between statuses.
type OrderStatus string

const (
	StatusPending        OrderStatus = "Pending"
	StatusAccepted       OrderStatus = "Accepted"
	StatusOutForDelivery OrderStatus = "Out for delivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
)

// OrderStatuses lists every valid status, in lifecycle order.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusAccepted,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Order records one purchased cart line. Price is a snapshot of the line
// subtotal at purchase time; everything except Status is immutable after
// creation, and orders are never deleted by the application.
type Order struct {
	ID         uint        `gorm:"primaryKey"`
	Quantity   int         `gorm:"not null"`
	Price      float64     `gorm:"not null"`
	Status     OrderStatus `gorm:"size:100;not null"`
	PaymentID  string      `gorm:"size:1000;not null"`
	CustomerID uint        `gorm:"not null;index"`
	ProductID  uint        `gorm:"not null"`
	Customer   Customer
	Product    Product
	CreatedAt  time.Time
}
