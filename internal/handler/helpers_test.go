package handler

import (
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/gorilla/sessions"
	"gorm.io/gorm"

	"github.com/shopworks/storefront/internal/config"
	"github.com/shopworks/storefront/internal/database"
	"github.com/shopworks/storefront/internal/model"
	"github.com/shopworks/storefront/internal/payment"
)

// getProjectRoot locates the repository root from this file's position so
// templates load regardless of the test working directory.
func getProjectRoot() string {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		log.Fatal("could not get caller information")
	}
	return filepath.Join(filepath.Dir(currentFile), "..", "..")
}

// newTestApp builds an App on a fresh in-memory database and a router with
// the real templates and routes.
func newTestApp(t *testing.T) (*App, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test database: %v", err)
	}
	// a second connection would see its own empty :memory: database
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	app := &App{
		DB:    db,
		Store: sessions.NewCookieStore([]byte("secret-key-for-test")),
		Cfg: config.Config{
			AdminEmail: "admin@admin.com",
			MediaDir:   t.TempDir(),
			Currency:   "USD",
		},
		Payments: payment.Disabled{},
	}

	router := gin.New()
	router.LoadHTMLGlob(filepath.Join(getProjectRoot(), "internal", "view", "templates", "*.html"))
	app.RegisterRoutes(router)
	return app, router
}

// postForm submits form values and returns the recorder.
func postForm(router *gin.Engine, path string, form url.Values, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// get performs a GET request with an optional session cookie.
func get(router *gin.Engine, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// sessionCookie extracts the last session cookie set on the response; the
// last write carries the freshest session state.
func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var latest string
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionName {
			latest = c.Name + "=" + c.Value
		}
	}
	if latest == "" {
		t.Fatal("no session cookie set on response")
	}
	return latest
}

// registerCustomer registers an account through the real handler and returns
// its logged-in session cookie.
func registerCustomer(t *testing.T, router *gin.Engine, username, email, password string) string {
	t.Helper()
	rec := postForm(router, "/register", url.Values{
		"username":         {username},
		"email":            {email},
		"password":         {password},
		"confirm_password": {password},
	}, "")
	if rec.Code != http.StatusFound {
		t.Fatalf("register %s: expected redirect, got %d: %s", email, rec.Code, rec.Body.String())
	}
	return sessionCookie(t, rec)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// createProduct inserts a catalog entry directly.
func createProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) model.Product {
	t.Helper()
	p := model.Product{
		Name:         name,
		Price:        price,
		Quantity:     stock,
		Description:  "test product",
		ProductImage: "/media/test.jpg",
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("create product %s: %v", name, err)
	}
	return p
}
