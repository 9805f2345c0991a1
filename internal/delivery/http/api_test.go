package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/roomly-app/roomly-backend/internal/config"
	"github.com/roomly-app/roomly-backend/internal/delivery/http/handler"
	"github.com/roomly-app/roomly-backend/internal/domain"
	"github.com/roomly-app/roomly-backend/internal/repository/memory"
	"github.com/roomly-app/roomly-backend/internal/usecase/directory"
	"github.com/roomly-app/roomly-backend/internal/usecase/engine"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	app := config.AppConfig{
		InterestMessageMaxLen: 1000,
		BrowseDefaultLimit:    20,
		BrowseMaxLimit:        50,
	}
	log := zap.NewNop()

	directoryUseCase := directory.NewDirectoryUseCase(store.Profiles(), nil, nil, app, log)
	engineUseCase := engine.NewEngineUseCase(store.Interests(), store.Matches(), store.Profiles(), app.InterestMessageMaxLen, log)

	router := NewRouter(
		handler.NewProfileHandler(directoryUseCase),
		handler.NewBrowseHandler(directoryUseCase),
		handler.NewInterestHandler(engineUseCase),
		handler.NewMatchHandler(engineUseCase),
		log,
	)
	return router.Setup()
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func createTestProfile(t *testing.T, r *gin.Engine, email string, budgetMin, budgetMax float64, location string) *domain.UserProfile {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/profiles", gin.H{
		"email":      email,
		"first_name": "Test",
		"last_name":  "User",
		"age":        27,
		"location":   location,
		"budget_min": budgetMin,
		"budget_max": budgetMax,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	p := decode[*domain.UserProfile](t, w)
	return p
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestProfileLifecycle(t *testing.T) {
	r := newTestRouter(t)

	created := createTestProfile(t, r, "alice@example.com", 800, 1200, "New York")
	require.Equal(t, 1, created.ID)

	// Duplicate email conflicts.
	w := doJSON(t, r, http.MethodPost, "/api/v1/profiles", gin.H{
		"email":      "alice@example.com",
		"first_name": "Other",
		"last_name":  "User",
		"age":        30,
		"location":   "Boston",
		"budget_min": 500,
		"budget_max": 700,
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// Partial update.
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/v1/profiles/%d", created.ID), gin.H{
		"location": "Brooklyn",
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[*domain.UserProfile](t, w)
	require.Equal(t, "Brooklyn", updated.Location)
	require.Equal(t, created.Email, updated.Email)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/profiles/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/profiles/999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/profiles/abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileValidationStatus(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/profiles", gin.H{
		"email":      "kid@example.com",
		"first_name": "Too",
		"last_name":  "Young",
		"age":        16,
		"location":   "Boston",
		"budget_min": 500,
		"budget_max": 700,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBrowseEndpoint(t *testing.T) {
	r := newTestRouter(t)

	alice := createTestProfile(t, r, "alice@example.com", 800, 1200, "New York")
	createTestProfile(t, r, "bob@example.com", 1000, 1500, "New York")
	createTestProfile(t, r, "carol@example.com", 2000, 2500, "Boston")

	w := doJSON(t, r, http.MethodGet,
		fmt.Sprintf("/api/v1/profiles/browse?viewer_id=%d&location=new+york&budget_min=1000", alice.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	results := decode[[]*domain.UserProfile](t, w)
	require.Len(t, results, 1)
	require.Equal(t, "bob@example.com", results[0].Email)

	// No matches is an empty array, not null.
	w = doJSON(t, r, http.MethodGet,
		fmt.Sprintf("/api/v1/profiles/browse?viewer_id=%d&location=chicago", alice.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, "[]", w.Body.String())

	// Filter validation surfaces as 400.
	w = doJSON(t, r, http.MethodGet,
		fmt.Sprintf("/api/v1/profiles/browse?viewer_id=%d&min_age=5", alice.ID), nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Missing viewer_id is rejected.
	w = doJSON(t, r, http.MethodGet, "/api/v1/profiles/browse", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggestBioUnavailable(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/profiles/suggest-bio", gin.H{
		"first_name": "Alice",
		"location":   "New York",
	})
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestInterestAndMatchFlow(t *testing.T) {
	r := newTestRouter(t)

	alice := createTestProfile(t, r, "alice@example.com", 800, 1200, "New York")
	bob := createTestProfile(t, r, "bob@example.com", 1000, 1500, "New York")

	// Bob expresses interest in Alice.
	w := doJSON(t, r, http.MethodPost, "/api/v1/interests", gin.H{
		"requester_id": bob.ID,
		"target_id":    alice.ID,
		"message":      "hi, your listing looks great",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	interest := decode[*domain.Interest](t, w)
	require.Equal(t, domain.InterestPending, interest.Status)

	// A repeat in the same direction conflicts.
	w = doJSON(t, r, http.MethodPost, "/api/v1/interests", gin.H{
		"requester_id": bob.ID,
		"target_id":    alice.ID,
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// Self-interest is a 400.
	w = doJSON(t, r, http.MethodPost, "/api/v1/interests", gin.H{
		"requester_id": bob.ID,
		"target_id":    bob.ID,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Alice sees it pending in her received list.
	w = doJSON(t, r, http.MethodGet,
		fmt.Sprintf("/api/v1/interests?user_id=%d&direction=received", alice.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	received := decode[[]*domain.InterestWithProfile](t, w)
	require.Len(t, received, 1)
	require.NotNil(t, received[0].Profile)
	require.Equal(t, bob.ID, received[0].Profile.ID)

	// Only the target may respond.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/interests/%d/respond", interest.ID), gin.H{
		"responder_id": bob.ID,
		"status":       "accepted",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	// Alice accepts; the response carries the match.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/interests/%d/respond", interest.ID), gin.H{
		"responder_id": alice.ID,
		"status":       "accepted",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode[*engine.RespondResult](t, w)
	require.Equal(t, domain.InterestAccepted, result.Interest.Status)
	require.NotNil(t, result.Match)

	// A second response to the same interest conflicts.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/interests/%d/respond", interest.ID), gin.H{
		"responder_id": alice.ID,
		"status":       "rejected",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// Both sides see the same match, enriched with the other's profile.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/matches?user_id=%d", alice.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	aliceMatches := decode[[]*domain.MatchWithProfile](t, w)
	require.Len(t, aliceMatches, 1)
	require.Equal(t, result.Match.ID, aliceMatches[0].Match.ID)
	require.NotNil(t, aliceMatches[0].Profile)
	require.Equal(t, bob.ID, aliceMatches[0].Profile.ID)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/matches?user_id=%d", bob.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	bobMatches := decode[[]*domain.MatchWithProfile](t, w)
	require.Len(t, bobMatches, 1)
	require.Equal(t, alice.ID, bobMatches[0].Profile.ID)
}

func TestInterestBadRequests(t *testing.T) {
	r := newTestRouter(t)

	alice := createTestProfile(t, r, "alice@example.com", 800, 1200, "New York")

	// Target profile does not exist.
	w := doJSON(t, r, http.MethodPost, "/api/v1/interests", gin.H{
		"requester_id": alice.ID,
		"target_id":    999,
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	// Malformed body.
	w = doJSON(t, r, http.MethodPost, "/api/v1/interests", gin.H{
		"requester_id": alice.ID,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown status fails binding.
	w = doJSON(t, r, http.MethodPost, "/api/v1/interests/1/respond", gin.H{
		"responder_id": alice.ID,
		"status":       "maybe",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Bad direction.
	w = doJSON(t, r, http.MethodGet,
		fmt.Sprintf("/api/v1/interests?user_id=%d&direction=inbox", alice.ID), nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown user on list endpoints.
	w = doJSON(t, r, http.MethodGet, "/api/v1/interests?user_id=999&direction=sent", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/matches?user_id=999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeactivatedProfileCannotBeTargeted(t *testing.T) {
	r := newTestRouter(t)

	alice := createTestProfile(t, r, "alice@example.com", 800, 1200, "New York")
	bob := createTestProfile(t, r, "bob@example.com", 1000, 1500, "New York")

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/v1/profiles/%d", bob.ID), gin.H{
		"is_active": false,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/interests", gin.H{
		"requester_id": alice.ID,
		"target_id":    bob.ID,
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	// And the profile no longer shows up while browsing.
	w = doJSON(t, r, http.MethodGet,
		fmt.Sprintf("/api/v1/profiles/browse?viewer_id=%d", alice.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, "[]", w.Body.String())
}
