package handler

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopworks/storefront/internal/model"
)

// Home lists every product, plus the caller's cart lines when logged in.
func (a *App) Home(c *gin.Context) {
	var items []model.Product
	if err := a.DB.Find(&items).Error; err != nil {
		c.String(http.StatusInternalServerError, "Error loading products.")
		return
	}

	cart := []model.CartLine{}
	if customer, ok := a.currentCustomer(c); ok {
		a.DB.Where("customer_id = ?", customer.ID).Find(&cart)
	}

	a.render(c, http.StatusOK, "home.html", gin.H{"Items": items, "Cart": cart})
}

// Search matches product names case-insensitively against the submitted
// query. GET renders the empty search page.
func (a *App) Search(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		a.render(c, http.StatusOK, "search.html", gin.H{
			"Items": []model.Product{}, "Query": "",
		})
		return
	}

	query := c.PostForm("search")
	var items []model.Product
	err := a.DB.
		Where("lower(name) LIKE ?", "%"+strings.ToLower(query)+"%").
		Find(&items).Error
	if err != nil {
		c.String(http.StatusInternalServerError, "Error searching products.")
		return
	}

	cart := []model.CartLine{}
	if customer, ok := a.currentCustomer(c); ok {
		a.DB.Where("customer_id = ?", customer.ID).Find(&cart)
	}

	a.render(c, http.StatusOK, "search.html", gin.H{"Items": items, "Cart": cart, "Query": query})
}

// ShowCreateProductForm renders the admin product-creation form.
func (a *App) ShowCreateProductForm(c *gin.Context) {
	a.render(c, http.StatusOK, "create-product.html", nil)
}

// ProcessCreateProductForm creates a product from the submitted form. The
// uploaded image is stored under the media directory with a fresh name.
func (a *App) ProcessCreateProductForm(c *gin.Context) {
	name := c.PostForm("product_name")
	price, priceErr := strconv.ParseFloat(c.PostForm("price"), 64)
	quantity, qtyErr := strconv.Atoi(c.PostForm("quantity"))
	description := c.PostForm("description")

	if msg := validateProduct(name, price, priceErr, quantity, qtyErr); msg != "" {
		a.flash(c, "There was an error with adding a product: "+msg, "danger")
		a.render(c, http.StatusOK, "create-product.html", nil)
		return
	}

	imagePath, err := a.saveProductImage(c)
	if err != nil {
		a.flash(c, "There was an error with adding a product: "+err.Error(), "danger")
		a.render(c, http.StatusOK, "create-product.html", nil)
		return
	}

	product := model.Product{
		Name:         name,
		Price:        price,
		Quantity:     quantity,
		Description:  description,
		ProductImage: imagePath,
	}
	if err := a.DB.Create(&product).Error; err != nil {
		a.flash(c, "There was an error with adding a product: name already exists", "danger")
		a.render(c, http.StatusOK, "create-product.html", nil)
		return
	}

	a.flash(c, name+" Added Successfully", "success")
	a.render(c, http.StatusOK, "create-product.html", nil)
}

func validateProduct(name string, price float64, priceErr error, quantity int, qtyErr error) string {
	if name == "" {
		return "name is required"
	}
	if priceErr != nil || price < 0 {
		return "price must be a non-negative number"
	}
	if qtyErr != nil || quantity < 0 {
		return "quantity must be a non-negative integer"
	}
	return ""
}

// saveProductImage stores the uploaded file under the media directory and
// returns the public path.
func (a *App) saveProductImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("product_image")
	if err != nil {
		return "", fmt.Errorf("product image is required")
	}

	ext := filepath.Ext(file.Filename)
	storedName := uuid.New().String() + ext
	if err := os.MkdirAll(a.Cfg.MediaDir, 0o755); err != nil {
		return "", fmt.Errorf("could not store image")
	}
	if err := c.SaveUploadedFile(file, filepath.Join(a.Cfg.MediaDir, storedName)); err != nil {
		return "", fmt.Errorf("could not store image")
	}
	return "/media/" + storedName, nil
}

// ShopItems is the admin catalog-management view, ordered by date added.
func (a *App) ShopItems(c *gin.Context) {
	var items []model.Product
	if err := a.DB.Order("date_added").Find(&items).Error; err != nil {
		c.String(http.StatusInternalServerError, "Error loading products.")
		return
	}
	a.render(c, http.StatusOK, "shop_items.html", gin.H{"Items": items})
}

// ShowUpdateItemForm renders the edit form pre-filled with the product.
func (a *App) ShowUpdateItemForm(c *gin.Context) {
	product, ok := a.productByParam(c)
	if !ok {
		return
	}
	a.render(c, http.StatusOK, "update_item.html", gin.H{"Item": product})
}

// ProcessUpdateItemForm applies the submitted changes to the product. A new
// image is optional; the stored one is kept when the field is empty.
func (a *App) ProcessUpdateItemForm(c *gin.Context) {
	product, ok := a.productByParam(c)
	if !ok {
		return
	}

	name := c.PostForm("product_name")
	price, priceErr := strconv.ParseFloat(c.PostForm("price"), 64)
	quantity, qtyErr := strconv.Atoi(c.PostForm("quantity"))
	description := c.PostForm("description")

	if msg := validateProduct(name, price, priceErr, quantity, qtyErr); msg != "" {
		a.flash(c, "There was an error with updating a product: "+msg, "danger")
		a.render(c, http.StatusOK, "update_item.html", gin.H{"Item": product})
		return
	}

	product.Name = name
	product.Price = price
	product.Quantity = quantity
	product.Description = description

	if _, err := c.FormFile("product_image"); err == nil {
		imagePath, err := a.saveProductImage(c)
		if err != nil {
			a.flash(c, "There was an error with updating a product: "+err.Error(), "danger")
			a.render(c, http.StatusOK, "update_item.html", gin.H{"Item": product})
			return
		}
		product.ProductImage = imagePath
	}

	if err := a.DB.Save(&product).Error; err != nil {
		a.flash(c, "There was an error with updating a product", "danger")
		a.render(c, http.StatusOK, "update_item.html", gin.H{"Item": product})
		return
	}

	a.flash(c, name+" Updated Successfully", "success")
	c.Redirect(http.StatusFound, "/view-shop-items")
}

// DeleteItem removes a product and its stored image.
func (a *App) DeleteItem(c *gin.Context) {
	product, ok := a.productByParam(c)
	if !ok {
		return
	}

	if stored, found := strings.CutPrefix(product.ProductImage, "/media/"); found {
		if err := os.Remove(filepath.Join(a.Cfg.MediaDir, stored)); err != nil {
			log.Printf("could not remove image %s: %v", product.ProductImage, err)
		}
	}

	if err := a.DB.Select("CartLines").Delete(&product).Error; err != nil {
		c.String(http.StatusInternalServerError, "Error deleting product.")
		return
	}

	a.flash(c, "Item Deleted Successfully", "success")
	c.Redirect(http.StatusFound, "/view-shop-items")
}

// productByParam loads the product named by the :id route parameter and
// writes the error response itself when it cannot.
func (a *App) productByParam(c *gin.Context) (model.Product, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid product id.")
		return model.Product{}, false
	}
	var product model.Product
	if err := a.DB.First(&product, uint(id)).Error; err != nil {
		c.HTML(http.StatusNotFound, "404.html", gin.H{})
		return model.Product{}, false
	}
	return product, true
}
