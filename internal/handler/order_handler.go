package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shopworks/storefront/internal/checkout"
	"github.com/shopworks/storefront/internal/model"
)

// PlaceOrder runs the checkout workflow for the caller's cart.
func (a *App) PlaceOrder(c *gin.Context) {
	customer := a.mustCustomer(c)

	workflow := &checkout.Workflow{
		DB:       a.DB,
		Payments: a.Payments,
		Currency: a.Cfg.Currency,
	}

	result, err := workflow.PlaceOrder(c.Request.Context(), customer)
	if err != nil {
		if !errors.Is(err, checkout.ErrInsufficientStock) {
			log.Printf("checkout failed for customer %d: %v", customer.ID, err)
		}
		a.flash(c, "Order not placed", "danger")
		c.Redirect(http.StatusFound, "/")
		return
	}
	if len(result.Orders) == 0 {
		// empty cart, nothing to do
		c.Redirect(http.StatusFound, "/cart")
		return
	}

	a.flash(c, "Order Placed Successfully", "success")
	c.Redirect(http.StatusFound, "/orders")
}

// MyOrders shows the caller's order history.
func (a *App) MyOrders(c *gin.Context) {
	customer := a.mustCustomer(c)

	var orders []model.Order
	err := a.DB.Preload("Product").
		Where("customer_id = ?", customer.ID).
		Find(&orders).Error
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading orders.")
		return
	}

	a.render(c, http.StatusOK, "orders.html", gin.H{"Orders": orders})
}

// ViewOrders is the admin view over every order.
func (a *App) ViewOrders(c *gin.Context) {
	var orders []model.Order
	err := a.DB.Preload("Product").Preload("Customer").Find(&orders).Error
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading orders.")
		return
	}

	a.render(c, http.StatusOK, "view_orders.html", gin.H{"Orders": orders})
}

// ShowUpdateOrderForm renders the status form for one order.
func (a *App) ShowUpdateOrderForm(c *gin.Context) {
	order, ok := a.orderByParam(c)
	if !ok {
		return
	}
	a.render(c, http.StatusOK, "order_update.html", gin.H{
		"Order":    order,
		"Statuses": model.OrderStatuses,
	})
}

// ProcessUpdateOrderForm moves an order to the submitted status. Status is
// the only mutable order field.
func (a *App) ProcessUpdateOrderForm(c *gin.Context) {
	order, ok := a.orderByParam(c)
	if !ok {
		return
	}

	status := model.OrderStatus(c.PostForm("order_status"))
	if !status.Valid() {
		a.flash(c, "Order "+c.Param("id")+" not updated", "danger")
		a.render(c, http.StatusOK, "order_update.html", gin.H{
			"Order":    order,
			"Statuses": model.OrderStatuses,
		})
		return
	}

	if err := a.DB.Model(&order).Update("status", status).Error; err != nil {
		a.flash(c, "Order "+c.Param("id")+" not updated", "danger")
		c.Redirect(http.StatusFound, "/view-orders")
		return
	}

	a.flash(c, "Order "+c.Param("id")+" Updated successfully", "success")
	c.Redirect(http.StatusFound, "/view-orders")
}

func (a *App) orderByParam(c *gin.Context) (model.Order, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid order id.")
		return model.Order{}, false
	}
	var order model.Order
	if err := a.DB.First(&order, uint(id)).Error; err != nil {
		c.HTML(http.StatusNotFound, "404.html", gin.H{})
		return model.Order{}, false
	}
	return order, true
}
