package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedback-hero/models"
)

func TestGetProfile(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/dashboard/api/profile", nil, requestOpts{token: s.token})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Test Restaurant", body["name"])
	assert.Equal(t, "owner@example.com", body["email"])
	assert.NotContains(t, body, "password_hash")
}

func TestUpdateBusiness(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPut, "/dashboard/api/profile", gin.H{
		"name":  "Renamed Bistro",
		"email": "bistro@example.com",
	}, requestOpts{token: s.token})
	require.Equal(t, http.StatusOK, w.Code)

	var business models.Business
	require.NoError(t, s.db.First(&business, "id = ?", s.business.ID).Error)
	assert.Equal(t, "Renamed Bistro", business.Name)
	assert.Equal(t, "bistro@example.com", business.Email)
}

func TestUpdateBusinessRejectsTakenEmail(t *testing.T) {
	s := newTestServer(t)

	other := models.Business{Name: "Other", Email: "other@example.com"}
	require.NoError(t, other.SetPassword("password123"))
	require.NoError(t, s.db.Create(&other).Error)

	w := s.do(t, http.MethodPut, "/dashboard/api/profile", gin.H{
		"name":  "Test Restaurant",
		"email": "other@example.com",
	}, requestOpts{token: s.token})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Keeping your own email is not a conflict.
	w = s.do(t, http.MethodPut, "/dashboard/api/profile", gin.H{
		"name":  "Test Restaurant",
		"email": "owner@example.com",
	}, requestOpts{token: s.token})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChangePassword(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/dashboard/api/change-password", gin.H{
		"current_password": "password123",
		"new_password":     "a-new-password",
		"confirm_password": "a-new-password",
	}, requestOpts{token: s.token})
	require.Equal(t, http.StatusOK, w.Code)

	// Old password no longer works, new one does.
	w = s.do(t, http.MethodPost, "/auth/login", gin.H{
		"email":    "owner@example.com",
		"password": "password123",
	}, requestOpts{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/auth/login", gin.H{
		"email":    "owner@example.com",
		"password": "a-new-password",
	}, requestOpts{})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChangePasswordValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/dashboard/api/change-password", gin.H{
		"current_password": "wrong-password",
		"new_password":     "a-new-password",
		"confirm_password": "a-new-password",
	}, requestOpts{token: s.token})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/dashboard/api/change-password", gin.H{
		"current_password": "password123",
		"new_password":     "a-new-password",
		"confirm_password": "something-else",
	}, requestOpts{token: s.token})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/dashboard/api/change-password", gin.H{
		"current_password": "password123",
		"new_password":     "short",
		"confirm_password": "short",
	}, requestOpts{token: s.token})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateSettingsMerges(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPut, "/dashboard/api/settings", gin.H{
		"theme":        "dark",
		"digest_phone": "+15555550100",
	}, requestOpts{token: s.token})
	require.Equal(t, http.StatusOK, w.Code)

	// A second update touches only its own keys; nil deletes.
	w = s.do(t, http.MethodPut, "/dashboard/api/settings", gin.H{
		"theme":        "light",
		"digest_phone": nil,
	}, requestOpts{token: s.token})
	require.Equal(t, http.StatusOK, w.Code)

	var business models.Business
	require.NoError(t, s.db.First(&business, "id = ?", s.business.ID).Error)
	assert.Equal(t, "light", business.Settings["theme"])
	assert.NotContains(t, business.Settings, "digest_phone")
}
