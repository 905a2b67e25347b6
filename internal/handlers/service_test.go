package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearhood/nearhood-backend/internal/models"
)

func listingBody(owner string) map[string]any {
	return map[string]any{
		"title":              "Math tuition",
		"description":        "Evening classes for grades 6-10",
		"price":              500,
		"category":           "education",
		"offered_by_user_id": owner,
	}
}

func TestCreateAndListServices(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/services/", listingBody("user-1"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := body["service"].(map[string]any)
	assert.NotEmpty(t, created["id"])
	assert.NotEmpty(t, created["created_at"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/services/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["count"])
}

func TestCreateServiceValidation(t *testing.T) {
	app, _ := newTestApp(t)

	missing := listingBody("user-1")
	missing["title"] = ""
	resp, body := doJSON(t, app, http.MethodPost, "/api/services/", missing)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "validation_error", body["error_code"])

	free := listingBody("user-1")
	free["price"] = 0
	resp, body = doJSON(t, app, http.MethodPost, "/api/services/", free)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "validation_error", body["error_code"])
}

func TestListServicesByUser(t *testing.T) {
	app, store := newTestApp(t)

	_, err := store.CreateService(&models.Service{
		Title:           "Tiffin service",
		Description:     "Home-cooked lunches",
		Price:           120,
		Category:        "food",
		OfferedByUserID: "user-2",
	})
	require.NoError(t, err)

	resp, body := doJSON(t, app, http.MethodPost, "/api/services/", listingBody("user-1"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = body

	resp, body = doJSON(t, app, http.MethodGet, "/api/users/user-1/services", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["count"])

	// Unknown owners get an empty set, not an error.
	resp, body = doJSON(t, app, http.MethodGet, "/api/users/nobody/services", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["count"])
}

func TestGetUserEndpoint(t *testing.T) {
	app, store := newTestApp(t)

	user, err := store.CreateUser(&models.UserRegistration{
		Name:  "Asha Rao",
		Flat:  "402",
		Floor: "4",
		Block: "B",
		Role:  models.RoleResident,
	}, "5551234567")
	require.NoError(t, err)

	resp, body := doJSON(t, app, http.MethodGet, "/api/users/"+user.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Asha Rao", body["name"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/users/missing", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not_found", body["error_code"])
}
