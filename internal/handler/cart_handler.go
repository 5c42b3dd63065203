package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopworks/storefront/internal/model"
)

// AddToCart puts one unit of the product into the caller's cart. A product
// already in the cart gets its line incremented instead of a second line.
func (a *App) AddToCart(c *gin.Context) {
	customer := a.mustCustomer(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid product id.")
		return
	}

	var product model.Product
	if err := a.DB.First(&product, uint(id)).Error; err != nil {
		c.HTML(http.StatusNotFound, "404.html", gin.H{})
		return
	}

	var line model.CartLine
	err = a.DB.
		Where("customer_id = ? AND product_id = ?", customer.ID, product.ID).
		First(&line).Error
	switch {
	case err == nil:
		line.Quantity++
		if err := a.DB.Save(&line).Error; err != nil {
			c.String(http.StatusInternalServerError, "Error updating cart.")
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		line = model.CartLine{Quantity: 1, CustomerID: customer.ID, ProductID: product.ID}
		if err := a.DB.Create(&line).Error; err != nil {
			c.String(http.StatusInternalServerError, "Error updating cart.")
			return
		}
	default:
		c.String(http.StatusInternalServerError, "Error updating cart.")
		return
	}

	a.flash(c, product.Name+" Added Successfully", "success")
	a.redirectBack(c)
}

// IncreaseQuantity bumps a cart line by one and returns the new quantity and
// cart total as JSON.
func (a *App) IncreaseQuantity(c *gin.Context) {
	customer := a.mustCustomer(c)
	line, ok := a.cartLineByQuery(c, customer)
	if !ok {
		return
	}

	line.Quantity++
	if err := a.DB.Save(&line).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating cart."})
		return
	}

	amount, err := a.cartAmount(customer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating cart."})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"quantity": line.Quantity,
		"amount":   amount,
	})
}

// DecreaseQuantity lowers a cart line by one; a line at quantity 1 is
// removed instead of dropping below the minimum.
func (a *App) DecreaseQuantity(c *gin.Context) {
	customer := a.mustCustomer(c)
	line, ok := a.cartLineByQuery(c, customer)
	if !ok {
		return
	}

	quantity := 0
	if line.Quantity > 1 {
		line.Quantity--
		if err := a.DB.Save(&line).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating cart."})
			return
		}
		quantity = line.Quantity
	} else {
		if err := a.DB.Delete(&model.CartLine{}, line.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating cart."})
			return
		}
	}

	amount, err := a.cartAmount(customer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating cart."})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"quantity": quantity,
		"amount":   amount,
	})
}

// RemoveFromCart deletes a cart line.
func (a *App) RemoveFromCart(c *gin.Context) {
	customer := a.mustCustomer(c)
	line, ok := a.cartLineByQuery(c, customer)
	if !ok {
		return
	}

	if err := a.DB.Delete(&model.CartLine{}, line.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating cart."})
		return
	}

	amount, err := a.cartAmount(customer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating cart."})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"quantity": 0,
		"amount":   amount,
	})
}

// ShowCart renders the caller's cart with the running total.
func (a *App) ShowCart(c *gin.Context) {
	customer := a.mustCustomer(c)

	var lines []model.CartLine
	err := a.DB.Preload("Product").
		Where("customer_id = ?", customer.ID).
		Find(&lines).Error
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading cart.")
		return
	}

	a.render(c, http.StatusOK, "cart.html", gin.H{
		"Cart":   lines,
		"Amount": model.CartTotal(lines),
	})
}

// cartLineByQuery loads the cart line named by ?cart_id=, refusing lines
// that belong to someone else. It writes the error response itself.
func (a *App) cartLineByQuery(c *gin.Context, customer model.Customer) (model.CartLine, bool) {
	id, err := strconv.ParseUint(c.Query("cart_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart id."})
		return model.CartLine{}, false
	}

	var line model.CartLine
	err = a.DB.
		Where("id = ? AND customer_id = ?", uint(id), customer.ID).
		First(&line).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found."})
		return model.CartLine{}, false
	}
	return line, true
}

// cartAmount recomputes the customer's cart total after a mutation.
func (a *App) cartAmount(customer model.Customer) (float64, error) {
	var lines []model.CartLine
	err := a.DB.Preload("Product").
		Where("customer_id = ?", customer.ID).
		Find(&lines).Error
	if err != nil {
		return 0, err
	}
	return model.CartTotal(lines), nil
}

// redirectBack returns to the referring page, or home when there is none.
func (a *App) redirectBack(c *gin.Context) {
	target := c.Request.Referer()
	if target == "" {
		target = "/"
	}
	c.Redirect(http.StatusFound, target)
}
