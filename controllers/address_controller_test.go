package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shopkart/shopkart-api/common/logger"
	"github.com/shopkart/shopkart-api/middleware"
	"github.com/shopkart/shopkart-api/models"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.InitializeWithWriter("development", nil)
	os.Exit(m.Run())
}

type fakeAddressRepo struct {
	addresses []models.Address
}

func (f *fakeAddressRepo) Create(_ context.Context, address *models.Address) error {
	address.ID = primitive.NewObjectID()
	f.addresses = append(f.addresses, *address)
	return nil
}

func (f *fakeAddressRepo) FindLatestByUser(_ context.Context, userID string) (*models.Address, error) {
	var latest *models.Address
	for i := range f.addresses {
		a := &f.addresses[i]
		if a.UserID != userID {
			continue
		}
		if latest == nil || a.CreatedAt.After(latest.CreatedAt) {
			latest = a
		}
	}
	return latest, nil
}

func (f *fakeAddressRepo) FindByUser(_ context.Context, userID string) ([]models.Address, error) {
	out := []models.Address{}
	for _, a := range f.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAddressRepo) DeleteByIDAndUser(_ context.Context, id primitive.ObjectID, userID string) (*models.Address, error) {
	for i, a := range f.addresses {
		if a.ID == id && a.UserID == userID {
			f.addresses = append(f.addresses[:i], f.addresses[i+1:]...)
			return &a, nil
		}
	}
	return nil, nil
}

// asUser stands in for RequireAuth in handler tests.
func asUser(username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUser, username)
		c.Next()
	}
}

func addressRouter(repo *fakeAddressRepo, username string) *gin.Engine {
	ac := NewAddressController(repo)
	r := gin.New()
	grp := r.Group("/api/addresses", asUser(username))
	grp.POST("/", ac.AddAddress)
	grp.GET("/latest", ac.GetLatestAddress)
	grp.GET("/", ac.GetAllAddresses)
	grp.DELETE("/:id", ac.DeleteAddress)
	return r
}

func validAddressBody() map[string]string {
	return map[string]string{
		"fullName":    "Asha Rao",
		"address":     "12 MG Road",
		"city":        "Bengaluru",
		"state":       "Karnataka",
		"country":     "India",
		"pincode":     "560001",
		"phoneNumber": "9876543210",
	}
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAddAddress(t *testing.T) {
	repo := &fakeAddressRepo{}
	r := addressRouter(repo, "asha")

	w := postJSON(r, "/api/addresses/", validAddressBody())

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.addresses, 1)
	assert.Equal(t, "asha", repo.addresses[0].UserID)
	assert.Equal(t, "560001", repo.addresses[0].Pincode)
}

func TestAddAddressValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(map[string]string)
	}{
		{"missing field", func(b map[string]string) { delete(b, "city") }},
		{"short pincode", func(b map[string]string) { b["pincode"] = "5600" }},
		{"alphabetic pincode", func(b map[string]string) { b["pincode"] = "56000a" }},
		{"short phone", func(b map[string]string) { b["phoneNumber"] = "98765" }},
		{"long phone", func(b map[string]string) { b["phoneNumber"] = "98765432101" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeAddressRepo{}
			r := addressRouter(repo, "asha")

			body := validAddressBody()
			tc.mutate(body)
			w := postJSON(r, "/api/addresses/", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "validation_failed")
			assert.Empty(t, repo.addresses)
		})
	}
}

func TestAddAddressFormattedPhone(t *testing.T) {
	// Separators are stripped before the ten-digit check.
	repo := &fakeAddressRepo{}
	r := addressRouter(repo, "asha")

	body := validAddressBody()
	body["phoneNumber"] = "98765-43210"
	w := postJSON(r, "/api/addresses/", body)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestGetLatestAddressNotFound(t *testing.T) {
	r := addressRouter(&fakeAddressRepo{}, "asha")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/addresses/latest", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestDeleteAddressOwnerScoped(t *testing.T) {
	repo := &fakeAddressRepo{}
	ownerRouter := addressRouter(repo, "asha")
	otherRouter := addressRouter(repo, "rohan")

	w := postJSON(ownerRouter, "/api/addresses/", validAddressBody())
	require.Equal(t, http.StatusCreated, w.Code)
	id := repo.addresses[0].ID.Hex()

	// Another user cannot delete it; the id reads as absent.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/addresses/"+id, nil)
	otherRouter.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Len(t, repo.addresses, 1)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/addresses/"+id, nil)
	ownerRouter.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, repo.addresses)
}

func TestDeleteAddressInvalidID(t *testing.T) {
	r := addressRouter(&fakeAddressRepo{}, "asha")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/addresses/not-an-id", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
