package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kennelhub-session-svc/src/internal/config"
	"kennelhub-session-svc/src/internal/models"
)

type fakeService struct {
	record      *models.SessionRecord
	acquireErr  error
	invalidated int64
	cleanupErr  error
	cleanups    int
}

func (f *fakeService) Acquire(ctx context.Context) (*models.SessionRecord, error) {
	if f.acquireErr != nil {
		return nil, f.acquireErr
	}
	return f.record, nil
}

func (f *fakeService) Cleanup(ctx context.Context) (int64, error) {
	f.cleanups++
	return f.invalidated, f.cleanupErr
}

func handlerConfig() *config.Configuration {
	return &config.Configuration{
		App: config.Application{Timeout: 5},
		Database: config.Database{
			Url: "mongodb://localhost:27017",
		},
		Target: config.TargetSite{
			LoginUrl: "https://example.org/login",
			Username: "user",
			Password: "secret",
		},
	}
}

func performRequest(h Handler, target string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/session", h.HandleSession)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHandleSessionSuccess(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	svc := &fakeService{
		record: &models.SessionRecord{
			SessionID:   "abc",
			LoginMethod: models.LoginMethodSSO,
			IsActive:    true,
			CreatedAt:   now,
			ExpiresAt:   now.Add(30 * time.Minute),
		},
	}

	w := performRequest(NewHandler(handlerConfig(), svc), "/api/v1/session")

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "abc", body["sessionId"])
	assert.Equal(t, "SSO", body["loginMethod"])
	assert.Equal(t, now.Add(30*time.Minute).Format(time.RFC3339), body["expiresAt"])
}

func TestHandleSessionLoginFailureIsBadRequest(t *testing.T) {
	svc := &fakeService{acquireErr: models.ErrLoginFailed}

	w := performRequest(NewHandler(handlerConfig(), svc), "/api/v1/session")

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestHandleSessionStoreFailureIsServerError(t *testing.T) {
	svc := &fakeService{acquireErr: models.ErrStoreQuery}

	w := performRequest(NewHandler(handlerConfig(), svc), "/api/v1/session")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandleSessionMissingCredentialsIsServerError(t *testing.T) {
	cfg := handlerConfig()
	cfg.Target.Username = ""
	cfg.Target.Password = ""
	svc := &fakeService{}

	w := performRequest(NewHandler(cfg, svc), "/api/v1/session")

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "credentials")
}

func TestHandleSessionCleanup(t *testing.T) {
	svc := &fakeService{invalidated: 2}

	w := performRequest(NewHandler(handlerConfig(), svc), "/api/v1/session?cleanup=true")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.cleanups)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body["message"], "2")
}

func TestHandleSessionCleanupFailure(t *testing.T) {
	svc := &fakeService{cleanupErr: models.ErrStoreUpdate}

	w := performRequest(NewHandler(handlerConfig(), svc), "/api/v1/session?cleanup=true")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
