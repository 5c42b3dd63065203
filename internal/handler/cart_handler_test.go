package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/shopworks/storefront/internal/model"
)

func TestAddToCartMergesDuplicates(t *testing.T) {
	app, router := newTestApp(t)
	cookie := registerCustomer(t, router, "alice", "alice@example.com", "hunter22")
	product := createProduct(t, app.DB, "Apple Watch Ultra", 800, 5)

	for i := 0; i < 2; i++ {
		rec := get(router, "/add-to-cart/"+itoa(product.ID), cookie)
		if rec.Code != http.StatusFound {
			t.Fatalf("add-to-cart attempt %d: expected redirect, got %d", i+1, rec.Code)
		}
	}

	var lines []model.CartLine
	app.DB.Find(&lines)
	if len(lines) != 1 {
		t.Fatalf("expected one merged cart line, got %d", len(lines))
	}
	if lines[0].Quantity != 2 {
		t.Errorf("expected merged quantity 2, got %d", lines[0].Quantity)
	}
}

func TestAddToCartUnknownProduct(t *testing.T) {
	_, router := newTestApp(t)
	cookie := registerCustomer(t, router, "alice", "alice@example.com", "hunter22")

	rec := get(router, "/add-to-cart/9999", cookie)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown product, got %d", rec.Code)
	}
}

func TestAddToCartRequiresLogin(t *testing.T) {
	app, router := newTestApp(t)
	product := createProduct(t, app.DB, "Apple Watch Ultra", 800, 5)

	rec := get(router, "/add-to-cart/"+itoa(product.ID), "")
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Errorf("expected login redirect, got %d -> %q", rec.Code, rec.Header().Get("Location"))
	}
}

type cartMutationResponse struct {
	Quantity int     `json:"quantity"`
	Amount   float64 `json:"amount"`
}

func decodeCartResponse(t *testing.T, body []byte) cartMutationResponse {
	t.Helper()
	var out cartMutationResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode cart response: %v (%s)", err, body)
	}
	return out
}

func TestIncreaseQuantityRecomputesTotal(t *testing.T) {
	app, router := newTestApp(t)
	cookie := registerCustomer(t, router, "alice", "alice@example.com", "hunter22")
	product := createProduct(t, app.DB, "Apple Watch Ultra", 800, 5)

	get(router, "/add-to-cart/"+itoa(product.ID), cookie)

	var line model.CartLine
	app.DB.First(&line)

	rec := get(router, "/increase-quantity?cart_id="+itoa(line.ID), cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeCartResponse(t, rec.Body.Bytes())
	if resp.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", resp.Quantity)
	}
	if resp.Amount != 1600 {
		t.Errorf("expected amount 1600, got %v", resp.Amount)
	}
}

func TestDecreaseBelowOneThenRemoveLeavesCartEmpty(t *testing.T) {
	app, router := newTestApp(t)
	cookie := registerCustomer(t, router, "alice", "alice@example.com", "hunter22")
	product := createProduct(t, app.DB, "Apple Watch Ultra", 800, 5)

	get(router, "/add-to-cart/"+itoa(product.ID), cookie)

	var line model.CartLine
	app.DB.First(&line)

	// quantity 1 - 1 removes the line rather than dropping below the minimum
	rec := get(router, "/decrease-quantity?cart_id="+itoa(line.ID), cookie)
	resp := decodeCartResponse(t, rec.Body.Bytes())
	if resp.Quantity != 0 || resp.Amount != 0 {
		t.Errorf("expected empty response, got %+v", resp)
	}

	// removing the now-gone line reports not found, cart stays empty
	rec = get(router, "/remove-from-cart?cart_id="+itoa(line.ID), cookie)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 removing a gone line, got %d", rec.Code)
	}

	var count int64
	app.DB.Model(&model.CartLine{}).Count(&count)
	if count != 0 {
		t.Errorf("expected empty cart, got %d lines", count)
	}
}

func TestCartMutationReportsTotalQueryFailure(t *testing.T) {
	app, router := newTestApp(t)
	cookie := registerCustomer(t, router, "alice", "alice@example.com", "hunter22")
	product := createProduct(t, app.DB, "Apple Watch Ultra", 800, 5)

	get(router, "/add-to-cart/"+itoa(product.ID), cookie)

	var line model.CartLine
	app.DB.First(&line)

	// losing the products table breaks the total recomputation mid-request
	if err := app.DB.Migrator().DropTable(&model.Product{}); err != nil {
		t.Fatalf("drop products table: %v", err)
	}

	rec := get(router, "/increase-quantity?cart_id="+itoa(line.ID), cookie)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 when the total cannot be computed, got %d", rec.Code)
	}
}

func TestRemoveFromCart(t *testing.T) {
	app, router := newTestApp(t)
	cookie := registerCustomer(t, router, "alice", "alice@example.com", "hunter22")
	watch := createProduct(t, app.DB, "Apple Watch Ultra", 800, 5)
	phone := createProduct(t, app.DB, "Phone", 200, 5)

	get(router, "/add-to-cart/"+itoa(watch.ID), cookie)
	get(router, "/add-to-cart/"+itoa(phone.ID), cookie)

	var line model.CartLine
	app.DB.Where("product_id = ?", watch.ID).First(&line)

	rec := get(router, "/remove-from-cart?cart_id="+itoa(line.ID), cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeCartResponse(t, rec.Body.Bytes())
	if resp.Amount != 200 {
		t.Errorf("expected remaining amount 200, got %v", resp.Amount)
	}
}

func TestCartLineOwnershipEnforced(t *testing.T) {
	app, router := newTestApp(t)
	cookieAlice := registerCustomer(t, router, "alice", "alice@example.com", "hunter22")
	cookieBob := registerCustomer(t, router, "bob", "bob@example.com", "hunter22")
	product := createProduct(t, app.DB, "Apple Watch Ultra", 800, 5)

	get(router, "/add-to-cart/"+itoa(product.ID), cookieAlice)

	var line model.CartLine
	app.DB.First(&line)

	rec := get(router, "/increase-quantity?cart_id="+itoa(line.ID), cookieBob)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 mutating another customer's cart line, got %d", rec.Code)
	}

	app.DB.First(&line, line.ID)
	if line.Quantity != 1 {
		t.Errorf("line mutated by another customer: quantity %d", line.Quantity)
	}
}

func TestShowCart(t *testing.T) {
	app, router := newTestApp(t)
	cookie := registerCustomer(t, router, "alice", "alice@example.com", "hunter22")
	product := createProduct(t, app.DB, "Apple Watch Ultra", 800, 5)

	get(router, "/add-to-cart/"+itoa(product.ID), cookie)

	rec := get(router, "/cart", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Apple Watch Ultra") || !strings.Contains(body, "800.00") {
		t.Errorf("cart page missing line details: %s", body)
	}
}
