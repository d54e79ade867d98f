package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkart/shopkart-api/models"
	"github.com/shopkart/shopkart-api/services"
)

type fakeCartStore struct {
	carts map[string]*models.Cart
}

func (f *fakeCartStore) FindByUser(_ context.Context, userID string) (*models.Cart, error) {
	cart, ok := f.carts[userID]
	if !ok {
		return nil, nil
	}
	copied := *cart
	copied.Items = append([]models.CartItem(nil), cart.Items...)
	return &copied, nil
}

func (f *fakeCartStore) Save(_ context.Context, cart *models.Cart) error {
	copied := *cart
	copied.Items = append([]models.CartItem(nil), cart.Items...)
	f.carts[cart.UserID] = &copied
	return nil
}

func cartRouter(username string) (*gin.Engine, *fakeCartStore) {
	store := &fakeCartStore{carts: make(map[string]*models.Cart)}
	cc := NewCartController(services.NewCartService(store))
	r := gin.New()
	grp := r.Group("/api/cart", asUser(username))
	grp.POST("/add", cc.AddItem)
	grp.GET("/user", cc.GetCart)
	grp.POST("/decrease", cc.DecreaseItem)
	grp.DELETE("/remove/:productId", cc.RemoveItem)
	grp.DELETE("/clear", cc.ClearCart)
	return r, store
}

func TestAddItemConvertsMajorUnits(t *testing.T) {
	r, store := cartRouter("asha")

	w := postJSON(r, "/api/cart/add", map[string]interface{}{
		"productId": "p1",
		"title":     "Headphones",
		"price":     499.99,
		"qty":       2,
	})

	require.Equal(t, http.StatusOK, w.Code)
	cart := store.carts["asha"]
	require.NotNil(t, cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(2*49999), cart.Items[0].Price)
	assert.Equal(t, 2, cart.Items[0].Qty)
}

func TestAddItemRejectsNonPositiveInput(t *testing.T) {
	r, store := cartRouter("asha")

	for _, body := range []map[string]interface{}{
		{"productId": "p1", "title": "T", "price": 0, "qty": 1},
		{"productId": "p1", "title": "T", "price": -5.0, "qty": 1},
		{"productId": "p1", "title": "T", "price": 10.0, "qty": 0},
		{"title": "T", "price": 10.0, "qty": 1},
	} {
		w := postJSON(r, "/api/cart/add", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	assert.Empty(t, store.carts)
}

func TestGetCartBeforeFirstAdd(t *testing.T) {
	r, _ := cartRouter("asha")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/cart/user", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestDecreaseUnknownProduct(t *testing.T) {
	r, _ := cartRouter("asha")

	w := postJSON(r, "/api/cart/add", map[string]interface{}{
		"productId": "p1", "title": "T", "price": 10.0, "qty": 1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(r, "/api/cart/decrease", map[string]interface{}{"productId": "p9", "qty": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartLifecycle(t *testing.T) {
	r, store := cartRouter("asha")

	w := postJSON(r, "/api/cart/add", map[string]interface{}{
		"productId": "p1", "title": "Headphones", "price": 10.00, "qty": 3,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(r, "/api/cart/decrease", map[string]interface{}{"productId": "p1", "qty": 1})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Cart models.Cart `json:"cart"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Cart.Items, 1)
	assert.Equal(t, 2, resp.Cart.Items[0].Qty)
	assert.Equal(t, int64(2000), resp.Cart.Items[0].Price)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/cart/remove/p1", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.carts["asha"].Items)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/cart/clear", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
