package model

// CartLine is one unpurchased (customer, product, quantity) intent. There is
// at most one line per customer/product pair; adding the same product again
// increments the existing line instead of inserting a duplicate.
type CartLine struct {
	ID         uint `gorm:"primaryKey"`
	Quantity   int  `gorm:"not null"`
	CustomerID uint `gorm:"not null;uniqueIndex:idx_cart_customer_product"`
	ProductID  uint `gorm:"not null;uniqueIndex:idx_cart_customer_product"`
	Product    Product
}

// Subtotal is the line's contribution to the cart total. Product must be
// preloaded.
func (l CartLine) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// CartTotal sums the subtotals of the given lines.
func CartTotal(lines []CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}
