package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Weruh/kujuana/middleware"
	"github.com/Weruh/kujuana/models"
	"github.com/Weruh/kujuana/routes"
	"github.com/Weruh/kujuana/services"
	"github.com/Weruh/kujuana/store"
)

type apiFixture struct {
	router  *mux.Router
	threads *store.MemoryThreads
	matches *services.MatchService
	tokens  map[string]string
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	profiles := store.NewMemoryProfiles()
	swipes := store.NewMemorySwipes()
	threads := store.NewMemoryThreads()

	suggestionService := &services.SuggestionService{Profiles: profiles, Swipes: swipes}
	matchService := &services.MatchService{Profiles: profiles, Swipes: swipes, Threads: threads}
	chatService := &services.ChatService{Matches: matchService, Threads: threads}

	router := mux.NewRouter()
	routes.RegisterMatchRoutes(router, profiles, suggestionService, matchService, chatService)

	f := &apiFixture{router: router, threads: threads, matches: matchService, tokens: map[string]string{}}
	ctx := context.Background()
	for _, id := range []string{"alice", "bob", "carol"} {
		require.NoError(t, profiles.Put(ctx, models.UserProfile{ID: id, Age: 30}))
		token, err := middleware.GenerateToken(id)
		require.NoError(t, err)
		f.tokens[id] = token
	}
	return f
}

func (f *apiFixture) do(t *testing.T, method, path, user string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if user != "" {
		req.Header.Set("Authorization", "Bearer "+f.tokens[user])
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestSuggestionsRequireAuth(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/api/match/suggestions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/match/suggestions", "alice", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Status string            `json:"status"`
		Data   []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "success", payload.Status)
	assert.Len(t, payload.Data, 2)
}

func TestSwipeValidation(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/api/match/swipe", "alice", map[string]string{
		"targetId": "bob", "decision": "maybe",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/match/swipe", "alice", map[string]string{
		"decision": "like",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/match/swipe", "alice", map[string]string{
		"targetId": "ghost", "decision": "like",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSwipeLikeReturnsMatchObject(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/api/match/swipe", "alice", map[string]string{
		"targetId": "bob", "decision": "like",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data struct {
			Decision string `json:"decision"`
			Match    *struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"match"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "like", payload.Data.Decision)
	require.NotNil(t, payload.Data.Match)
	assert.Equal(t, "pending", payload.Data.Match.Status)

	// Pass returns a null match.
	rec = f.do(t, http.MethodPost, "/api/match/swipe", "alice", map[string]string{
		"targetId": "carol", "decision": "pass",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Nil(t, payload.Data.Match)
}

func TestSendMessageEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	ctx := context.Background()

	result, err := f.matches.RecordSwipe(ctx, "alice", "bob", models.DecisionLike)
	require.NoError(t, err)
	threadID := result.Match.ID

	// Non-member -> 403, thread unmodified.
	rec := f.do(t, http.MethodPost, "/api/match/"+threadID+"/messages", "carol", map[string]string{"text": "hi"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Empty message -> 400.
	rec = f.do(t, http.MethodPost, "/api/match/"+threadID+"/messages", "alice", map[string]string{"text": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	stored, err := f.threads.GetByID(ctx, threadID)
	require.NoError(t, err)
	assert.Empty(t, stored.Conversation)

	// Member with text -> 200 with the updated thread and message.
	rec = f.do(t, http.MethodPost, "/api/match/"+threadID+"/messages", "bob", map[string]string{"text": "hello"})
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data struct {
			Message struct {
				Text     string `json:"text"`
				SenderID string `json:"senderId"`
			} `json:"message"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "hello", payload.Data.Message.Text)
	assert.Equal(t, "bob", payload.Data.Message.SenderID)
}

func TestStatsEndpoint(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/api/match/swipe", "alice", map[string]string{
		"targetId": "bob", "decision": "like",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/match/stats", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data services.SwipeStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, 1, payload.Data.SwipesToday)
	assert.Equal(t, 1, payload.Data.LikesToday)
	assert.Equal(t, 0, payload.Data.MatchesToday)
}
