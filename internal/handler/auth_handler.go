package handler

import (
	"errors"
	"net/http"
	"net/mail"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopworks/storefront/internal/model"
)

// ShowRegisterPage renders the registration form.
func (a *App) ShowRegisterPage(c *gin.Context) {
	a.render(c, http.StatusOK, "register.html", gin.H{"Username": "", "Email": ""})
}

// ProcessRegisterForm validates the submitted registration and creates the
// account. The account becomes the admin when its email matches the
// configured admin address.
func (a *App) ProcessRegisterForm(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")
	confirmPassword := c.PostForm("confirm_password")

	if msg := validateRegistration(username, email, password, confirmPassword); msg != "" {
		a.flash(c, "There was an error with creating a user: "+msg, "danger")
		a.render(c, http.StatusOK, "register.html", gin.H{"Username": username, "Email": email})
		return
	}

	var count int64
	a.DB.Model(&model.Customer{}).Where("email = ? OR username = ?", email, username).Count(&count)
	if count > 0 {
		a.flash(c, "There was an error with creating a user: email or username already exists", "danger")
		a.render(c, http.StatusOK, "register.html", gin.H{"Username": username, "Email": email})
		return
	}

	customer := model.Customer{
		Email:    email,
		Username: username,
		Role:     model.RoleCustomer,
	}
	if email == a.Cfg.AdminEmail {
		customer.Role = model.RoleAdmin
	}
	if err := customer.SetPassword(password); err != nil {
		a.flash(c, "There was an error with creating a user", "danger")
		a.render(c, http.StatusOK, "register.html", gin.H{"Username": username, "Email": email})
		return
	}
	if err := a.DB.Create(&customer).Error; err != nil {
		// covers races that slip past the pre-check
		a.flash(c, "There was an error with creating a user: email or username already exists", "danger")
		a.render(c, http.StatusOK, "register.html", gin.H{"Username": username, "Email": email})
		return
	}

	a.loginSession(c, customer)
	a.flash(c, "Account created successfully! You are now logged in as "+customer.Username, "success")
	c.Redirect(http.StatusFound, "/")
}

func validateRegistration(username, email, password, confirmPassword string) string {
	if len(username) < 2 || len(username) > 30 {
		return "username must be between 2 and 30 characters"
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "invalid email address"
	}
	if len(password) < 6 {
		return "password must be at least 6 characters"
	}
	if password != confirmPassword {
		return "passwords do not match"
	}
	return ""
}

// ShowLoginPage renders the login form.
func (a *App) ShowLoginPage(c *gin.Context) {
	a.render(c, http.StatusOK, "login.html", nil)
}

// ProcessLoginForm checks the credentials and starts a session. The failure
// message is the same whether the email or the password was wrong.
func (a *App) ProcessLoginForm(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	var customer model.Customer
	err := a.DB.Where("email = ?", email).First(&customer).Error
	if err != nil || !customer.VerifyPassword(password) {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			a.flash(c, "An internal error occurred. Please try again.", "danger")
		} else {
			a.flash(c, "Email and password don't match a valid user", "danger")
		}
		c.Redirect(http.StatusFound, "/login")
		return
	}

	a.loginSession(c, customer)
	a.flash(c, "You are now logged in as: "+customer.Username, "success")
	c.Redirect(http.StatusFound, "/")
}

// Logout invalidates the session.
func (a *App) Logout(c *gin.Context) {
	session, _ := a.Store.Get(c.Request, sessionName)
	delete(session.Values, userSessionKey)
	_ = session.Save(c.Request, c.Writer)

	a.flash(c, "You are now logged out", "info")
	c.Redirect(http.StatusFound, "/")
}

// ShowProfilePage shows a customer their own profile; anyone else gets the
// access-denied page.
func (a *App) ShowProfilePage(c *gin.Context) {
	customer := a.mustCustomer(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || customer.ID != uint(id) {
		a.renderAccessDenied(c)
		return
	}
	a.render(c, http.StatusOK, "profile.html", gin.H{"Customer": customer})
}

// ShowChangePasswordPage renders the change-password form for the owner of
// the account.
func (a *App) ShowChangePasswordPage(c *gin.Context) {
	customer := a.mustCustomer(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || customer.ID != uint(id) {
		a.renderAccessDenied(c)
		return
	}
	a.render(c, http.StatusOK, "change-password.html", gin.H{"Customer": customer})
}

// ProcessChangePasswordForm updates the password after verifying the current
// one.
func (a *App) ProcessChangePasswordForm(c *gin.Context) {
	customer := a.mustCustomer(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || customer.ID != uint(id) {
		a.renderAccessDenied(c)
		return
	}

	currentPassword := c.PostForm("current_password")
	newPassword := c.PostForm("new_password")
	confirmPassword := c.PostForm("confirm_password")

	if !customer.VerifyPassword(currentPassword) {
		a.flash(c, "Current password is incorrect", "danger")
		c.Redirect(http.StatusFound, "/change_password/"+c.Param("id"))
		return
	}
	if len(newPassword) < 6 {
		a.flash(c, "New password must be at least 6 characters", "danger")
		c.Redirect(http.StatusFound, "/change_password/"+c.Param("id"))
		return
	}
	if newPassword != confirmPassword {
		a.flash(c, "New passwords do not match", "danger")
		c.Redirect(http.StatusFound, "/change_password/"+c.Param("id"))
		return
	}

	if err := customer.SetPassword(newPassword); err != nil {
		a.flash(c, "Could not update password", "danger")
		c.Redirect(http.StatusFound, "/change_password/"+c.Param("id"))
		return
	}
	if err := a.DB.Model(&customer).Update("password_hash", customer.PasswordHash).Error; err != nil {
		a.flash(c, "Could not update password", "danger")
		c.Redirect(http.StatusFound, "/change_password/"+c.Param("id"))
		return
	}

	a.flash(c, "Password updated", "success")
	c.Redirect(http.StatusFound, "/profile/"+c.Param("id"))
}

func (a *App) loginSession(c *gin.Context, customer model.Customer) {
	session, _ := a.Store.Get(c.Request, sessionName)
	session.Values[userSessionKey] = customer.ID
	_ = session.Save(c.Request, c.Writer)
}
