package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/strollapp/stroll-backend/internal/config"
	"github.com/strollapp/stroll-backend/internal/dto"
	"github.com/strollapp/stroll-backend/internal/handlers"
	"github.com/strollapp/stroll-backend/internal/models"
	"github.com/strollapp/stroll-backend/internal/routes"
	"github.com/strollapp/stroll-backend/internal/services"
	"github.com/strollapp/stroll-backend/internal/storage"
	"github.com/strollapp/stroll-backend/internal/token"
)

// fakePresigner avoids AWS calls; URLs just need to be recognizable.
type fakePresigner struct{}

func (fakePresigner) PresignUpload(_ context.Context, contentType string, _ time.Duration) (*storage.Upload, error) {
	return &storage.Upload{
		URL: "https://bucket.test/upload",
		Key: "walks/1748779200_testobject.jpg",
	}, nil
}

func (fakePresigner) PresignDownload(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://bucket.test/download/" + key, nil
}

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Walk{}, &models.ShareCard{}, &models.Feedback{}, &models.RemoteConfig{}))

	cfg := &config.Config{
		JWTSecret:      "test-secret",
		AdminToken:     "admin-secret",
		WebhookSecret:  "hook-secret",
		UploadURLTTL:   10 * time.Minute,
		DownloadURLTTL: time.Hour,
	}

	tokenService := token.NewService(cfg.JWTSecret, cfg.TokenTTL)
	userService := services.NewUserService(db, tokenService)
	subscriptionService := services.NewSubscriptionService(db)
	walkService := services.NewWalkService(db)
	feedbackService := services.NewFeedbackService(db)

	shareCardService := services.NewShareCardService(db, walkService)

	app := fiber.New()
	routes.Setup(app, cfg,
		userService,
		handlers.NewAuthHandler(userService, tokenService),
		handlers.NewWalkHandler(walkService, fakePresigner{}, cfg),
		handlers.NewShareCardHandler(shareCardService, fakePresigner{}, cfg),
		handlers.NewSubscriptionHandler(subscriptionService),
		handlers.NewFeedbackHandler(feedbackService),
		handlers.NewWebhookHandler(userService, subscriptionService, cfg),
		handlers.NewRemoteConfigHandler(db),
		handlers.NewHealthHandler(),
	)

	return &testEnv{app: app, db: db, cfg: cfg}
}

func (e *testEnv) request(t *testing.T, method, path, bearer string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (e *testEnv) signup(t *testing.T, providerID, username string) dto.SocialSignupResponse {
	t.Helper()
	resp := e.request(t, fiber.MethodPost, "/api/auth/social/signup", "", fiber.Map{
		"provider":    "kakao",
		"provider_id": providerID,
		"username":    username,
		"nickname":    "Walker",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[dto.SocialSignupResponse](t, resp)
}

func TestSignupAndLogin(t *testing.T) {
	env := newTestEnv(t)

	// Unknown identity is told to sign up.
	resp := env.request(t, fiber.MethodPost, "/api/auth/social/verify", "", fiber.Map{
		"provider": "kakao", "provider_id": "kakao-1",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	verify := decode[dto.SocialVerifyResponse](t, resp)
	assert.Equal(t, dto.VerifyStatusNeedSignup, verify.Status)

	signup := env.signup(t, "kakao-1", "walker_one")
	assert.Equal(t, "walker_one", *signup.User.Username)
	assert.NotEmpty(t, signup.Token.AccessToken)
	// Permanent token: no expiry advertised.
	assert.Nil(t, signup.Token.ExpiresIn)

	// Second verify logs straight in.
	resp = env.request(t, fiber.MethodPost, "/api/auth/social/verify", "", fiber.Map{
		"provider": "kakao", "provider_id": "kakao-1",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	verify = decode[dto.SocialVerifyResponse](t, resp)
	assert.Equal(t, dto.VerifyStatusExists, verify.Status)
	require.NotNil(t, verify.Token)

	// Duplicate signup conflicts.
	resp = env.request(t, fiber.MethodPost, "/api/auth/social/signup", "", fiber.Map{
		"provider": "kakao", "provider_id": "kakao-1", "nickname": "Walker",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestCheckID(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "kakao-1", "walker_one")

	resp := env.request(t, fiber.MethodGet, "/api/users/check_id?username=walker_one", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	check := decode[dto.CheckIDResponse](t, resp)
	assert.False(t, check.Available)

	resp = env.request(t, fiber.MethodGet, "/api/users/check_id?username=fresh_name", "", nil)
	check = decode[dto.CheckIDResponse](t, resp)
	assert.True(t, check.Available)
}

func TestLogoutRevokesToken(t *testing.T) {
	env := newTestEnv(t)
	signup := env.signup(t, "kakao-1", "walker_one")
	tok := signup.Token.AccessToken

	resp := env.request(t, fiber.MethodGet, "/api/me", tok, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, fiber.MethodPost, "/api/auth/logout", tok, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	// Every token issued before logout is dead.
	resp = env.request(t, fiber.MethodGet, "/api/me", tok, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestDeleteAccount(t *testing.T) {
	env := newTestEnv(t)
	signup := env.signup(t, "kakao-1", "walker_one")
	tok := signup.Token.AccessToken

	resp := env.request(t, fiber.MethodDelete, "/api/me", tok, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = env.request(t, fiber.MethodGet, "/api/me", tok, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// The freed identity can register again.
	env.signup(t, "kakao-1", "walker_one")
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/me", "/api/walks", "/api/me/subscription"} {
		resp := env.request(t, fiber.MethodGet, path, "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
	}

	resp := env.request(t, fiber.MethodGet, "/api/me", "garbage-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestWalkLifecycle(t *testing.T) {
	env := newTestEnv(t)
	signup := env.signup(t, "kakao-1", "walker_one")
	tok := signup.Token.AccessToken

	resp := env.request(t, fiber.MethodPost, "/api/uploads/presigned_url", tok, fiber.Map{
		"content_type": "image/jpeg",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	presigned := decode[dto.PresignedURLResponse](t, resp)
	assert.Equal(t, "https://bucket.test/upload", presigned.UploadURL)
	require.NotEmpty(t, presigned.PhotoKey)

	resp = env.request(t, fiber.MethodPost, "/api/walks", tok, fiber.Map{
		"started_at":       "2025-06-01T09:00:00Z",
		"ended_at":         "2025-06-01T09:30:00Z",
		"duration_seconds": 1800,
		"distance_meters":  2400,
		"step_count":       3500,
		"photo_key":        presigned.PhotoKey,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode[dto.WalkResponse](t, resp)
	require.NotNil(t, created.Photo.URL)
	// The stored key is resolved to a fresh download URL on every read.
	assert.Equal(t, "https://bucket.test/download/"+presigned.PhotoKey, *created.Photo.URL)

	resp = env.request(t, fiber.MethodGet, "/api/walks", tok, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decode[dto.WalkListResponse](t, resp)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "2025-06-01", list.Items[0].Date)
	assert.Equal(t, int64(1), list.TotalCount)

	resp = env.request(t, fiber.MethodDelete, fmt.Sprintf("/api/walks/%d", created.ID), tok, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = env.request(t, fiber.MethodGet, fmt.Sprintf("/api/walks/%d", created.ID), tok, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestWalkValidationOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	signup := env.signup(t, "kakao-1", "walker_one")
	tok := signup.Token.AccessToken

	resp := env.request(t, fiber.MethodPost, "/api/walks", tok, fiber.Map{
		"started_at":       "2025-06-01T09:30:00Z",
		"ended_at":         "2025-06-01T09:00:00Z",
		"duration_seconds": 1800,
	})
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	ve := decode[dto.ValidationErrorResponse](t, resp)
	assert.Contains(t, ve.Fields, "ended_at")
}

func TestSubscriptionEndpoints(t *testing.T) {
	env := newTestEnv(t)
	signup := env.signup(t, "kakao-1", "walker_one")
	tok := signup.Token.AccessToken

	resp := env.request(t, fiber.MethodGet, "/api/me/subscription", tok, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	status := decode[dto.SubscriptionStatusResponse](t, resp)
	assert.Equal(t, "none", status.Type)
	assert.True(t, status.IsExpired)

	resp = env.request(t, fiber.MethodPost, "/api/me/subscription/trial", tok, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = env.request(t, fiber.MethodGet, "/api/me/subscription", tok, nil)
	status = decode[dto.SubscriptionStatusResponse](t, resp)
	assert.Equal(t, "trial", status.Type)
	assert.Equal(t, 7, status.DaysLeft)

	// The trial is once per account, ever.
	resp = env.request(t, fiber.MethodPost, "/api/me/subscription/trial", tok, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	expiresAt := time.Now().UTC().Add(30 * 24 * time.Hour).Format(time.RFC3339)
	resp = env.request(t, fiber.MethodPost, "/api/me/subscription", tok, fiber.Map{
		"platform":       "ios",
		"transaction_id": "txn-1",
		"expires_at":     expiresAt,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.request(t, fiber.MethodGet, "/api/me/subscription", tok, nil)
	status = decode[dto.SubscriptionStatusResponse](t, resp)
	assert.Equal(t, "paid", status.Type)

	resp = env.request(t, fiber.MethodDelete, "/api/me/subscription", tok, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cancelled := decode[dto.SubscriptionCancelledResponse](t, resp)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.NotNil(t, cancelled.ExpiresAt)
}

func TestSubscriptionWebhook(t *testing.T) {
	env := newTestEnv(t)
	signup := env.signup(t, "kakao-1", "walker_one")
	tok := signup.Token.AccessToken

	expiration := time.Now().Add(30 * 24 * time.Hour).UnixMilli()
	body, err := json.Marshal(fiber.Map{
		"event": fiber.Map{
			"type":             "INITIAL_PURCHASE",
			"app_user_id":      fmt.Sprintf("%d", signup.User.ID),
			"product_id":       "stroll_monthly",
			"expiration_at_ms": expiration,
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, "/api/webhooks/subscription", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "hook-secret")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	status := decode[dto.SubscriptionStatusResponse](t, env.request(t, fiber.MethodGet, "/api/me/subscription", tok, nil))
	assert.Equal(t, "paid", status.Type)

	// Wrong shared secret gets nothing.
	req = httptest.NewRequest(fiber.MethodPost, "/api/webhooks/subscription", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "wrong")
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminFeedbackList(t *testing.T) {
	env := newTestEnv(t)
	signup := env.signup(t, "kakao-1", "walker_one")
	tok := signup.Token.AccessToken

	resp := env.request(t, fiber.MethodPost, "/api/feedbacks", tok, fiber.Map{
		"content":     "love the app",
		"device_type": "android",
		"app_version": "2.1.0",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// A regular user is not an admin.
	resp = env.request(t, fiber.MethodGet, "/api/admin/feedbacks", tok, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req := httptest.NewRequest(fiber.MethodGet, "/api/admin/feedbacks", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("X-Admin-Token", "admin-secret")
	adminResp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, adminResp.StatusCode)

	list := decode[dto.AdminFeedbackListResponse](t, adminResp)
	require.Equal(t, 1, list.TotalCount)
	assert.Equal(t, "love the app", list.Items[0].Content)
	assert.Equal(t, "android", list.Items[0].DeviceType)
}

func (e *testEnv) adminRequest(t *testing.T, method, path, bearer string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("X-Admin-Token", "admin-secret")

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRemoteConfigRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	signup := env.signup(t, "kakao-1", "walker_one")
	tok := signup.Token.AccessToken

	// Each stored type is coerced on read.
	for key, payload := range map[string]fiber.Map{
		"min_app_version":   {"value": "1.2.0"},
		"maintenance_mode":  {"value": "true", "type": "bool"},
		"max_walks_per_day": {"value": "50", "type": "int"},
		"announcement":      {"value": `{"title":"hello"}`, "type": "json"},
	} {
		resp := env.adminRequest(t, fiber.MethodPut, "/api/admin/config/"+key, tok, payload)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, key)
	}

	resp := env.request(t, fiber.MethodGet, "/api/config", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cfg := decode[map[string]interface{}](t, resp)
	assert.Equal(t, "1.2.0", cfg["min_app_version"])
	assert.Equal(t, true, cfg["maintenance_mode"])
	assert.Equal(t, float64(50), cfg["max_walks_per_day"])
	assert.Equal(t, map[string]interface{}{"title": "hello"}, cfg["announcement"])

	// Writing an existing key updates in place.
	resp = env.adminRequest(t, fiber.MethodPut, "/api/admin/config/maintenance_mode", tok, fiber.Map{
		"value": "false", "type": "bool",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	cfg = decode[map[string]interface{}](t, env.request(t, fiber.MethodGet, "/api/config", "", nil))
	assert.Equal(t, false, cfg["maintenance_mode"])

	resp = env.adminRequest(t, fiber.MethodPut, "/api/admin/config/empty", tok, fiber.Map{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// A regular user cannot write config.
	resp = env.request(t, fiber.MethodPut, "/api/admin/config/min_app_version", tok, fiber.Map{
		"value": "9.9.9",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRemoteConfigDelete(t *testing.T) {
	env := newTestEnv(t)
	signup := env.signup(t, "kakao-1", "walker_one")
	tok := signup.Token.AccessToken

	resp := env.adminRequest(t, fiber.MethodPut, "/api/admin/config/min_app_version", tok, fiber.Map{
		"value": "1.2.0",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.adminRequest(t, fiber.MethodDelete, "/api/admin/config/min_app_version", tok, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	cfg := decode[map[string]interface{}](t, env.request(t, fiber.MethodGet, "/api/config", "", nil))
	assert.NotContains(t, cfg, "min_app_version")

	resp = env.adminRequest(t, fiber.MethodDelete, "/api/admin/config/min_app_version", tok, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func (e *testEnv) createWalk(t *testing.T, tok, startedAt, endedAt string, durationSeconds int) dto.WalkResponse {
	t.Helper()
	resp := e.request(t, fiber.MethodPost, "/api/walks", tok, fiber.Map{
		"started_at":       startedAt,
		"ended_at":         endedAt,
		"duration_seconds": durationSeconds,
		"distance_meters":  durationSeconds, // ~1 m/s, keeps totals easy to read
		"step_count":       durationSeconds * 2,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[dto.WalkResponse](t, resp)
}

func TestDailyWalkSummaries(t *testing.T) {
	env := newTestEnv(t)
	signup := env.signup(t, "kakao-1", "walker_one")
	tok := signup.Token.AccessToken

	// One short walk on the 1st; two walks on the 2nd that together pass the
	// 30-minute goal, one of them past the 10-minute mark on its own.
	env.createWalk(t, tok, "2025-06-01T09:00:00Z", "2025-06-01T09:05:00Z", 300)
	env.createWalk(t, tok, "2025-06-02T09:00:00Z", "2025-06-02T09:20:00Z", 1200)
	env.createWalk(t, tok, "2025-06-02T18:00:00Z", "2025-06-02T18:15:00Z", 900)

	resp := env.request(t, fiber.MethodGet, "/api/daily_walks/2025-06-02", tok, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	day := decode[dto.DailyWalkSummaryResponse](t, resp)
	assert.Equal(t, 2, day.WalkCount)
	assert.Equal(t, 2100, day.TotalDurationSeconds)
	assert.Equal(t, 2100, day.TotalDistanceMeters)
	assert.Equal(t, 4200, day.TotalStepCount)
	assert.True(t, day.GoalAchieved)
	assert.True(t, day.HasWalk10Min)

	day = decode[dto.DailyWalkSummaryResponse](t, env.request(t, fiber.MethodGet, "/api/daily_walks/2025-06-01", tok, nil))
	assert.Equal(t, 1, day.WalkCount)
	assert.False(t, day.GoalAchieved)
	assert.False(t, day.HasWalk10Min)

	// A day without walks is a zeroed summary, not an error.
	day = decode[dto.DailyWalkSummaryResponse](t, env.request(t, fiber.MethodGet, "/api/daily_walks/2025-06-03", tok, nil))
	assert.Equal(t, 0, day.WalkCount)
	assert.False(t, day.GoalAchieved)

	resp = env.request(t, fiber.MethodGet, "/api/daily_walks", tok, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decode[dto.DailyWalkSummaryListResponse](t, resp)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "2025-06-02", list.Items[0].Date)
	assert.Equal(t, "2025-06-01", list.Items[1].Date)

	list = decode[dto.DailyWalkSummaryListResponse](t, env.request(t, fiber.MethodGet, "/api/daily_walks?start_date=2025-06-02&end_date=2025-06-02", tok, nil))
	require.Len(t, list.Items, 1)
	assert.Equal(t, "2025-06-02", list.Items[0].Date)

	resp = env.request(t, fiber.MethodGet, "/api/daily_walks/not-a-date", tok, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestShareCards(t *testing.T) {
	env := newTestEnv(t)
	signup := env.signup(t, "kakao-1", "walker_one")
	tok := signup.Token.AccessToken

	walk := env.createWalk(t, tok, "2025-06-01T09:00:00Z", "2025-06-01T09:30:00Z", 1800)

	resp := env.request(t, fiber.MethodPost, "/api/share_cards", tok, fiber.Map{
		"walk_id":         walk.ID,
		"card_date":       "2025-06-01",
		"frame_theme_key": "sunset",
		"image_key":       "walks/1748779200_cardimage.jpg",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	card := decode[dto.ShareCardResponse](t, resp)
	assert.Equal(t, walk.ID, card.WalkID)
	assert.Equal(t, "2025-06-01", card.CardDate)
	assert.Equal(t, "sunset", card.FrameThemeKey)
	// Metrics omitted by the client are snapshotted from the walk.
	require.NotNil(t, card.DurationSeconds)
	assert.Equal(t, 1800, *card.DurationSeconds)
	require.NotNil(t, card.Image.URL)
	assert.Equal(t, "https://bucket.test/download/walks/1748779200_cardimage.jpg", *card.Image.URL)

	// Unknown or foreign walks cannot be carded.
	resp = env.request(t, fiber.MethodPost, "/api/share_cards", tok, fiber.Map{
		"walk_id": walk.ID + 99, "card_date": "2025-06-01",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = env.request(t, fiber.MethodPost, "/api/share_cards", tok, fiber.Map{
		"walk_id": walk.ID,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	list := decode[dto.ShareCardListResponse](t, env.request(t, fiber.MethodGet, "/api/share_cards", tok, nil))
	require.Equal(t, 1, list.TotalCount)

	list = decode[dto.ShareCardListResponse](t, env.request(t, fiber.MethodGet, "/api/share_cards?date=2025-06-02", tok, nil))
	assert.Equal(t, 0, list.TotalCount)

	// The card is a snapshot: deleting the walk leaves it readable.
	resp = env.request(t, fiber.MethodDelete, fmt.Sprintf("/api/walks/%d", walk.ID), tok, nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	list = decode[dto.ShareCardListResponse](t, env.request(t, fiber.MethodGet, "/api/share_cards", tok, nil))
	assert.Equal(t, 1, list.TotalCount)
}
