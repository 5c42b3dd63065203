package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"gorm.io/gorm"

	"github.com/shopworks/storefront/internal/config"
	"github.com/shopworks/storefront/internal/model"
	"github.com/shopworks/storefront/internal/payment"
)

const (
	sessionName    = "storefront-session"
	userSessionKey = "userID"
	contextUserKey = "customer"
)

// App carries everything the handlers need: the store handles, the session
// store, the payment collector, and the configuration. It is built once in
// main and once per test, instead of living in package globals.
type App struct {
	DB       *gorm.DB
	Store    *sessions.CookieStore
	Cfg      config.Config
	Payments payment.Collector
}

// RegisterRoutes wires every route onto the router.
func (a *App) RegisterRoutes(r *gin.Engine) {
	r.GET("/", a.Home)
	r.GET("/home", a.Home)
	r.GET("/search", a.Search)
	r.POST("/search", a.Search)
	r.Static("/media", a.Cfg.MediaDir)

	r.GET("/register", a.ShowRegisterPage)
	r.POST("/register", a.ProcessRegisterForm)
	r.GET("/login", a.ShowLoginPage)
	r.POST("/login", a.ProcessLoginForm)
	r.GET("/attacker/dictionary-attack", a.DictionaryAttack)

	auth := r.Group("/", a.AuthRequired())
	{
		auth.GET("/logout", a.Logout)
		auth.GET("/profile/:id", a.ShowProfilePage)
		auth.GET("/change_password/:id", a.ShowChangePasswordPage)
		auth.POST("/change_password/:id", a.ProcessChangePasswordForm)

		auth.GET("/add-to-cart/:id", a.AddToCart)
		auth.POST("/add-to-cart/:id", a.AddToCart)
		auth.GET("/increase-quantity", a.IncreaseQuantity)
		auth.GET("/decrease-quantity", a.DecreaseQuantity)
		auth.GET("/remove-from-cart", a.RemoveFromCart)
		auth.GET("/cart", a.ShowCart)

		auth.GET("/place-order", a.PlaceOrder)
		auth.GET("/orders", a.MyOrders)
	}

	admin := r.Group("/", a.AuthRequired(), a.RequireAdmin())
	{
		admin.GET("/create_product", a.ShowCreateProductForm)
		admin.POST("/create_product", a.ProcessCreateProductForm)
		admin.GET("/view-shop-items", a.ShopItems)
		admin.GET("/update-item/:id", a.ShowUpdateItemForm)
		admin.POST("/update-item/:id", a.ProcessUpdateItemForm)
		admin.GET("/delete-item/:id", a.DeleteItem)
		admin.DELETE("/delete-item/:id", a.DeleteItem)

		admin.GET("/view-orders", a.ViewOrders)
		admin.GET("/update-order/:id", a.ShowUpdateOrderForm)
		admin.POST("/update-order/:id", a.ProcessUpdateOrderForm)

		admin.GET("/customers", a.DisplayCustomers)
		admin.GET("/customers/:id", a.DeleteCustomer)
		admin.DELETE("/customers/:id", a.DeleteCustomer)
	}

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "404.html", gin.H{})
	})
}

// AuthRequired resolves the session to a Customer and stores it in the gin
// context; anonymous requests are redirected to the login page.
func (a *App) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, ok := a.currentCustomer(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(contextUserKey, customer)
		c.Next()
	}
}

// RequireAdmin is the capability gate for admin-only routes. The role was
// fixed at registration, so this is a single check per request.
func (a *App) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		customer := a.mustCustomer(c)
		if !customer.IsAdmin() {
			a.renderAccessDenied(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentCustomer loads the customer referenced by the session, if any.
func (a *App) currentCustomer(c *gin.Context) (model.Customer, bool) {
	session, _ := a.Store.Get(c.Request, sessionName)
	userID, ok := session.Values[userSessionKey].(uint)
	if !ok {
		return model.Customer{}, false
	}
	var customer model.Customer
	if err := a.DB.First(&customer, userID).Error; err != nil {
		return model.Customer{}, false
	}
	return customer, true
}

// mustCustomer returns the customer placed in the context by AuthRequired.
func (a *App) mustCustomer(c *gin.Context) model.Customer {
	customer, _ := c.Get(contextUserKey)
	return customer.(model.Customer)
}

func (a *App) renderAccessDenied(c *gin.Context) {
	c.HTML(http.StatusForbidden, "access-denied.html", gin.H{})
}

// flash queues a one-shot message under the given category
// ("success", "danger", or "info").
func (a *App) flash(c *gin.Context, message, category string) {
	session, _ := a.Store.Get(c.Request, sessionName)
	session.AddFlash(message, category)
	_ = session.Save(c.Request, c.Writer)
}

// flashes drains the queued messages for rendering.
func (a *App) flashes(c *gin.Context) gin.H {
	session, _ := a.Store.Get(c.Request, sessionName)
	out := gin.H{
		"FlashesSuccess": session.Flashes("success"),
		"FlashesDanger":  session.Flashes("danger"),
		"FlashesInfo":    session.Flashes("info"),
	}
	_ = session.Save(c.Request, c.Writer)
	return out
}

// render merges the flash messages and the logged-in customer into data and
// renders the template.
func (a *App) render(c *gin.Context, code int, template string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	for k, v := range a.flashes(c) {
		data[k] = v
	}
	if customer, ok := a.currentCustomer(c); ok {
		data["IsLoggedIn"] = true
		data["User"] = customer
	} else {
		data["IsLoggedIn"] = false
	}
	c.HTML(code, template, data)
}
