// Package checkout converts a customer's cart into committed orders.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopworks/storefront/internal/model"
	"github.com/shopworks/storefront/internal/payment"
)

// ErrInsufficientStock is returned when any cart line asks for more units
// than the product has left. The whole checkout rolls back.
var ErrInsufficientStock = errors.New("insufficient stock")

// Workflow places orders for a customer's cart. One payment call covers the
// entire cart; the cart-to-orders conversion runs in a single transaction so
// either every line becomes an order or none does.
type Workflow struct {
	DB       *gorm.DB
	Payments payment.Collector
	Currency string
}

// Result reports what a PlaceOrder call produced. An empty cart yields a
// zero Result and no error.
type Result struct {
	Orders  []model.Order
	Total   float64
	Receipt payment.Receipt
}

// PlaceOrder runs the checkout for the given customer.
//
// The payment provider is charged once for the cart total before anything is
// written. Inside the transaction each line's stock is taken with a
// conditional decrement (quantity = quantity - n only where quantity >= n),
// so two concurrent checkouts cannot race past the stock check, and a line
// that cannot be covered aborts the transaction with ErrInsufficientStock,
// leaving every product and the cart untouched.
func (w *Workflow) PlaceOrder(ctx context.Context, customer model.Customer) (Result, error) {
	var lines []model.CartLine
	err := w.DB.WithContext(ctx).
		Preload("Product").
		Where("customer_id = ?", customer.ID).
		Find(&lines).Error
	if err != nil {
		return Result{}, fmt.Errorf("load cart: %w", err)
	}
	if len(lines) == 0 {
		return Result{}, nil
	}

	total := model.CartTotal(lines)

	receipt, err := w.Payments.Collect(ctx, payment.Charge{
		Email:     customer.Email,
		Amount:    total,
		Currency:  w.Currency,
		Reference: uuid.NewString(),
	})
	if err != nil {
		return Result{}, err
	}

	status := model.StatusPending
	if receipt.Status == "approved" {
		status = model.StatusAccepted
	}

	var orders []model.Order
	err = w.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, line := range lines {
			res := tx.Model(&model.Product{}).
				Where("id = ? AND quantity >= ?", line.ProductID, line.Quantity).
				Update("quantity", gorm.Expr("quantity - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrInsufficientStock
			}

			order := model.Order{
				Quantity:   line.Quantity,
				Price:      line.Subtotal(),
				Status:     status,
				PaymentID:  receipt.ID,
				CustomerID: customer.ID,
				ProductID:  line.ProductID,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			orders = append(orders, order)

			if err := tx.Delete(&model.CartLine{}, line.ID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	return Result{Orders: orders, Total: total, Receipt: receipt}, nil
}
