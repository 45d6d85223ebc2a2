package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/marketplace-service/internal/api/http/handlers"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/cache"
	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/observability"
	"github.com/spec-kit/marketplace-service/internal/persistence"
	"github.com/spec-kit/marketplace-service/internal/service"
	"github.com/spec-kit/marketplace-service/internal/store"
)

type testEnv struct {
	app     *fiber.App
	tokens  *auth.TokenManager
	jobs    store.Collection
	bids    store.Collection
	metrics *observability.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zap.NewNop()
	jobs := store.NewMemoryCollection()
	bids := store.NewMemoryCollection()
	listings := cache.NewListingCache(nil, time.Minute, logger)

	jobService := service.NewJobService(jobs, listings, nil)
	bidService := service.NewBidService(bids, nil)
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	app := fiber.New()
	metrics := observability.NewMetrics()
	RegisterMiddlewares(app, logger, metrics, 0, config.CORSConfig{
		AllowedOrigins: []string{"http://localhost:5173"},
	})
	RegisterRoutes(app, RouteConfig{
		Health: handlers.NewHealthHandler("marketplace-service", "test", &persistence.Postgres{}, &persistence.Redis{}),
		Auth:   handlers.NewAuthHandler(tokens),
		Jobs:   handlers.NewJobsHandler(jobService),
		Bids:   handlers.NewBidsHandler(bidService),
		Gate:   auth.NewOwnerGate(tokens),
	})

	return &testEnv{app: app, tokens: tokens, jobs: jobs, bids: bids, metrics: metrics}
}

func (e *testEnv) request(t *testing.T, method, target string, body any, email string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if email != "" {
		token, _, err := e.tokens.Issue(email)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}

	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func TestIssueTokenSetsGuardedCookie(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/jwt", map[string]any{"email": "a@x.com"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]bool
	decodeBody(t, resp, &body)
	require.True(t, body["success"])

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	require.Equal(t, auth.CookieName, cookie.Name)
	require.True(t, cookie.HttpOnly)
	require.True(t, cookie.Secure)
	require.Equal(t, http.SameSiteNoneMode, cookie.SameSite)

	email, err := env.tokens.Verify(cookie.Value)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", email)
}

func TestIssueTokenRejectsUnknownFields(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/jwt", map[string]any{"email": "a@x.com", "role": "admin"}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogoutExpiresCookie(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/logout", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	require.Empty(t, cookies[0].Value)
	require.True(t, cookies[0].Expires.Before(time.Now()))
}

func TestListJobsRequiresCredential(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/v1/jobs?email=a@x.com", nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestListJobsCrossIdentityForbidden(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/v1/jobs?email=b@x.com", nil, "a@x.com")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestListJobsOwnerOnly(t *testing.T) {
	env := newTestEnv(t)

	for _, owner := range []string{"a@x.com", "b@x.com", "a@x.com"} {
		resp := env.request(t, http.MethodPost, "/api/v1/jobs", map[string]any{
			"buyerEmail": owner,
			"jobTitle":   "job for " + owner,
			"category":   "web-development",
		}, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := env.request(t, http.MethodGet, "/api/v1/jobs?email=a@x.com", nil, "a@x.com")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var jobs []domain.Job
	decodeBody(t, resp, &jobs)
	require.Len(t, jobs, 2)
	for _, job := range jobs {
		require.Equal(t, "a@x.com", job.BuyerEmail)
	}
}

func TestCategoryTabsAreIsolated(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/jobs", map[string]any{
		"buyerEmail": "a@x.com",
		"jobTitle":   "responsive site",
		"category":   "web-development",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/v1/tab1", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tab1 []domain.Job
	decodeBody(t, resp, &tab1)
	require.Len(t, tab1, 1)
	require.Equal(t, "responsive site", tab1[0].JobTitle)

	resp = env.request(t, http.MethodGet, "/api/v1/tab2", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tab2 []domain.Job
	decodeBody(t, resp, &tab2)
	require.Empty(t, tab2)
}

func TestGetJobPublicAndPermissive(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/jobs", map[string]any{
		"buyerEmail": "a@x.com",
		"jobTitle":   "public job",
		"category":   "graphics-design",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]string
	decodeBody(t, resp, &created)
	id := created["insertedId"]
	require.NotEmpty(t, id)

	resp = env.request(t, http.MethodGet, "/api/v1/jobs/"+id, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var job domain.Job
	decodeBody(t, resp, &job)
	require.Equal(t, "public job", job.JobTitle)
}

func TestCreateJobRejectsUnknownCategory(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/jobs", map[string]any{
		"buyerEmail": "a@x.com",
		"jobTitle":   "odd job",
		"category":   "basket-weaving",
	}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateAndDeleteJob(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/jobs", map[string]any{
		"buyerEmail": "a@x.com",
		"jobTitle":   "old",
		"category":   "web-development",
	}, "")
	var created map[string]string
	decodeBody(t, resp, &created)
	id := created["insertedId"]

	resp = env.request(t, http.MethodPut, "/api/v1/jobs/"+id, map[string]any{
		"jobTitle":     "new",
		"deadline":     "2026-12-01",
		"category":     "digital-marketing",
		"minimumPrice": 10,
		"maximumPrice": 20,
		"description":  "reworked",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated map[string]any
	decodeBody(t, resp, &updated)
	require.Equal(t, float64(1), updated["matchedCount"])

	resp = env.request(t, http.MethodDelete, "/api/v1/jobs/"+id, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var deleted map[string]any
	decodeBody(t, resp, &deleted)
	require.Equal(t, float64(1), deleted["deletedCount"])
}

func TestListBidsGatedAndSorted(t *testing.T) {
	env := newTestEnv(t)

	for _, price := range []float64{300, 100} {
		resp := env.request(t, http.MethodPost, "/api/v1/bids", map[string]any{
			"sellerEmail": "s@x.com",
			"buyerEmail":  "b@x.com",
			"price":       price,
			"status":      "pending",
		}, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := env.request(t, http.MethodGet, "/api/v1/bids?email=b@x.com", nil, "a@x.com")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/v1/bids?email=s@x.com&sortField=price&sortOrder=asc", nil, "s@x.com")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var bids []domain.Bid
	decodeBody(t, resp, &bids)
	require.Len(t, bids, 2)
	require.Equal(t, float64(100), bids[0].Price)
	require.Equal(t, float64(300), bids[1].Price)
}

func TestListBidRequestsByBuyer(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/bids", map[string]any{
		"sellerEmail": "s@x.com",
		"buyerEmail":  "b@x.com",
		"price":       50,
		"status":      "pending",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/v1/bids-request?email=b@x.com", nil, "b@x.com")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var bids []domain.Bid
	decodeBody(t, resp, &bids)
	require.Len(t, bids, 1)
	require.Equal(t, "b@x.com", bids[0].BuyerEmail)
}

func TestUpdateBidStatusPreservesOtherFields(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/v1/bids", map[string]any{
		"sellerEmail": "s@x.com",
		"buyerEmail":  "b@x.com",
		"price":       75,
		"deadline":    "2026-11-15",
		"status":      "pending",
	}, "")
	var created map[string]string
	decodeBody(t, resp, &created)
	id := created["insertedId"]

	resp = env.request(t, http.MethodPut, "/api/v1/bids-request/"+id, map[string]any{"status": "in-progress"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc, err := env.bids.FindOne(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "in-progress", doc["status"])
	require.Equal(t, "s@x.com", doc["sellerEmail"])
	require.Equal(t, float64(75), doc["price"])
	require.Equal(t, "2026-11-15", doc["deadline"])
}

func TestUpdateBidStatusUpsertsSparseRecord(t *testing.T) {
	env := newTestEnv(t)
	id := "6f1b0b5e-33a3-4c8e-9a5f-8c2d1e1f2a3b"

	resp := env.request(t, http.MethodPut, "/api/v1/bids-request/"+id, map[string]any{"status": "completed"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated map[string]any
	decodeBody(t, resp, &updated)
	require.Equal(t, id, updated["upsertedId"])

	doc, err := env.bids.FindOne(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "completed", doc["status"])
	require.NotContains(t, doc, "sellerEmail")
}

func TestUpdateBidStatusRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPut, "/api/v1/bids-request/6f1b0b5e-33a3-4c8e-9a5f-8c2d1e1f2a3b", map[string]any{"status": "abandoned"}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRejectedRequestsRecordedUnderFinalStatus(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/v1/jobs?email=a@x.com", nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/v1/bids?email=b@x.com", nil, "a@x.com")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	require.Equal(t, int64(1), env.metrics.RequestCount("/api/v1/jobs", http.MethodGet, http.StatusUnauthorized))
	require.Equal(t, int64(1), env.metrics.RequestCount("/api/v1/bids", http.MethodGet, http.StatusForbidden))
	require.Equal(t, int64(0), env.metrics.RequestCount("/api/v1/jobs", http.MethodGet, http.StatusOK))
	require.Equal(t, int64(1), env.metrics.ErrorCount("/api/v1/jobs", http.MethodGet, "UNAUTHORIZED"))
	require.Equal(t, int64(1), env.metrics.ErrorCount("/api/v1/bids", http.MethodGet, "FORBIDDEN"))
}

func TestRootBanner(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "marketplace-service is running", string(raw))
}
