package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopworks/storefront/internal/model"
)

// DisplayCustomers is the admin view over every account.
func (a *App) DisplayCustomers(c *gin.Context) {
	var customers []model.Customer
	if err := a.DB.Find(&customers).Error; err != nil {
		c.String(http.StatusInternalServerError, "Error loading customers.")
		return
	}
	a.render(c, http.StatusOK, "customers.html", gin.H{"Customers": customers})
}

// DeleteCustomer removes an account together with its cart lines and
// orders, mirroring the foreign-key cascade regardless of driver.
func (a *App) DeleteCustomer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid customer id.")
		return
	}

	var customer model.Customer
	if err := a.DB.First(&customer, uint(id)).Error; err != nil {
		c.HTML(http.StatusNotFound, "404.html", gin.H{})
		return
	}

	err = a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", customer.ID).Delete(&model.CartLine{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", customer.ID).Delete(&model.Order{}).Error; err != nil {
			return err
		}
		return tx.Delete(&customer).Error
	})
	if err != nil {
		c.String(http.StatusInternalServerError, "Error deleting customer.")
		return
	}

	a.flash(c, "The account with the email '"+customer.Email+"' has been deleted", "success")
	c.Redirect(http.StatusFound, "/customers")
}
