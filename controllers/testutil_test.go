package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"feedback-hero/config"
	"feedback-hero/models"
	"feedback-hero/routes"
	"feedback-hero/services"
	"feedback-hero/utils"
)

type testServer struct {
	router   *gin.Engine
	db       *gorm.DB
	cfg      *config.Config
	business models.Business
	token    string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A fresh pool connection would get its own empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Business{}, &models.Feedback{}))

	cfg := &config.Config{
		Port:            "0",
		JWTSecret:       "test-secret",
		JWTExpiryHours:  24,
		BusinessName:    "Test Restaurant",
		PublicURL:       "http://localhost:8080",
		CooldownMinutes: 5,
	}

	business := models.Business{
		Name:     cfg.BusinessName,
		Email:    "owner@example.com",
		Settings: models.JSONB{},
	}
	require.NoError(t, business.SetPassword("password123"))
	require.NoError(t, db.Create(&business).Error)

	limiter := services.NewRateLimiter(services.NewMemorySessionStore(), cfg.Cooldown())
	router := routes.SetupRouter(db, cfg, limiter)

	token, err := utils.GenerateToken(business.ID.String(), cfg.JWTSecret, cfg.JWTExpiryHours)
	require.NoError(t, err)

	return &testServer{router: router, db: db, cfg: cfg, business: business, token: token}
}

type requestOpts struct {
	token   string
	cookies []*http.Cookie
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, opts requestOpts) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if opts.token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.token)
	}
	for _, cookie := range opts.cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (s *testServer) insertFeedback(t *testing.T, overall int, ts time.Time, mutate func(*models.Feedback)) models.Feedback {
	t.Helper()
	f := models.Feedback{
		BusinessID:    s.business.ID,
		Timestamp:     ts,
		OverallRating: overall,
	}
	if mutate != nil {
		mutate(&f)
	}
	require.NoError(t, s.db.Create(&f).Error)
	return f
}

func intPtr(v int) *int { return &v }
