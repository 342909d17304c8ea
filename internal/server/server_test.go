package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/propai/internal/memory"
	"github.com/mesh-intelligence/propai/internal/remote"
	"github.com/mesh-intelligence/propai/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type recordingIndexer struct {
	mu      sync.Mutex
	put     []string
	removed []string
	err     error
}

func (r *recordingIndexer) Put(p types.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.put = append(r.put, p.ID)
	return r.err
}

func (r *recordingIndexer) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, id)
	return r.err
}

func setupServer(t *testing.T, opts ...Option) *gin.Engine {
	t.Helper()
	b := memory.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendMemory, Seed: true}))
	t.Cleanup(func() { b.Detach() })
	return New(b, opts...).Router()
}

func call(t *testing.T, r http.Handler, route, path string, args any) (int, remote.Response) {
	t.Helper()
	rawArgs, err := json.Marshal(args)
	require.NoError(t, err)
	body, err := json.Marshal(remote.Request{Path: path, Args: rawArgs})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, route, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp remote.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func TestHealth(t *testing.T) {
	r := setupServer(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestQuerySuccess(t *testing.T) {
	r := setupServer(t)
	code, resp := call(t, r, "/api/query", remote.FnGetFeaturedProperties, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, remote.StatusSuccess, resp.Status)

	var props []types.Property
	require.NoError(t, json.Unmarshal(resp.Value, &props))
	assert.Len(t, props, 3)
}

func TestGetMissingReturnsNull(t *testing.T) {
	r := setupServer(t)
	code, resp := call(t, r, "/api/query", remote.FnGetProperty, remote.IDArgs{ID: "nope"})
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, "null", string(resp.Value))
}

func TestLookupArgsReachTheService(t *testing.T) {
	tests := []struct {
		name  string
		route string
		path  string
		args  any
		value string
	}{
		{"missing id", "/api/query", remote.FnGetProperty, map[string]any{}, "null"},
		{"empty id", "/api/query", remote.FnGetUser, remote.IDArgs{}, "null"},
		{"empty email", "/api/query", remote.FnGetUserByEmail, remote.EmailArgs{}, "null"},
		{"unknown role", "/api/query", remote.FnGetUsersByRole, remote.RoleArgs{Role: "admin"}, "[]"},
		{"delete empty id", "/api/mutation", remote.FnDeleteMessage, remote.IDArgs{}, "false"},
		{"update empty id", "/api/mutation", remote.FnUpdateCollection, remote.UpdateCollectionArgs{}, "null"},
		{"add to empty collection id", "/api/mutation", remote.FnAddPropertyToCollection, remote.MembershipArgs{PropertyID: "1"}, "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupServer(t)
			code, resp := call(t, r, tt.route, tt.path, tt.args)
			require.Equal(t, http.StatusOK, code, resp.ErrorMessage)
			assert.Equal(t, remote.StatusSuccess, resp.Status)
			assert.JSONEq(t, tt.value, string(resp.Value))
		})
	}
}

func TestRecentNegativeLimitUsesDefault(t *testing.T) {
	r := setupServer(t)
	code, resp := call(t, r, "/api/query", remote.FnGetRecentMessages, remote.RecentArgs{UserID: "user-1", Limit: -1})
	require.Equal(t, http.StatusOK, code, resp.ErrorMessage)

	var msgs []types.Message
	require.NoError(t, json.Unmarshal(resp.Value, &msgs))
	assert.Len(t, msgs, 2)
}

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		name   string
		route  string
		path   string
		args   any
		status int
		code   string
	}{
		{"unknown function", "/api/query", "properties:nope", nil, http.StatusNotFound, remote.CodeNotFoundFunction},
		{"mutation on query route", "/api/query", remote.FnCreateProperty, types.Property{Title: "x"}, http.StatusNotFound, remote.CodeNotFoundFunction},
		{"invalid entity", "/api/mutation", remote.FnCreateProperty, types.Property{}, http.StatusBadRequest, remote.CodeInvalidArgument},
		{"negative bedrooms", "/api/mutation", remote.FnCreateProperty, types.Property{Title: "x", Bedrooms: -1}, http.StatusBadRequest, remote.CodeInvalidArgument},
		{"collection without name", "/api/mutation", remote.FnCreateCollection, types.Collection{UserID: "user-1"}, http.StatusBadRequest, remote.CodeInvalidArgument},
		{"invalid role on create", "/api/mutation", remote.FnCreateUser, types.User{Email: "a@b.c", Role: "admin"}, http.StatusBadRequest, remote.CodeInvalidRole},
		{"email taken", "/api/mutation", remote.FnCreateUser, types.User{Email: "john@example.com", Name: "J", Role: types.RoleBuyer}, http.StatusConflict, remote.CodeEmailTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupServer(t)
			code, resp := call(t, r, tt.route, tt.path, tt.args)
			assert.Equal(t, tt.status, code)
			assert.Equal(t, remote.StatusError, resp.Status)
			require.NotNil(t, resp.ErrorData)
			assert.Equal(t, tt.code, resp.ErrorData.Code)
			assert.NotEmpty(t, resp.ErrorMessage)
		})
	}
}

func TestMalformedBody(t *testing.T) {
	r := setupServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIndexerMirrorsPropertyWrites(t *testing.T) {
	idx := &recordingIndexer{}
	r := setupServer(t, WithIndexer(idx))

	code, resp := call(t, r, "/api/mutation", remote.FnCreateProperty, types.Property{Title: "Lakeview Condo", Location: "Austin"})
	require.Equal(t, http.StatusOK, code)
	var created types.Property
	require.NoError(t, json.Unmarshal(resp.Value, &created))

	code, _ = call(t, r, "/api/mutation", remote.FnUpdateProperty, remote.UpdatePropertyArgs{
		ID:            created.ID,
		PropertyPatch: types.PropertyPatch{Featured: types.Ptr(true)},
	})
	require.Equal(t, http.StatusOK, code)

	code, _ = call(t, r, "/api/mutation", remote.FnDeleteProperty, remote.IDArgs{ID: created.ID})
	require.Equal(t, http.StatusOK, code)

	code, _ = call(t, r, "/api/mutation", remote.FnDeleteProperty, remote.IDArgs{ID: created.ID})
	require.Equal(t, http.StatusOK, code)

	assert.Equal(t, []string{created.ID, created.ID}, idx.put)
	assert.Equal(t, []string{created.ID}, idx.removed, "no-op delete is not mirrored")
}

func TestIndexerFailureDoesNotFailCall(t *testing.T) {
	idx := &recordingIndexer{err: errors.New("meilisearch down")}
	r := setupServer(t, WithIndexer(idx))

	code, resp := call(t, r, "/api/mutation", remote.FnCreateProperty, types.Property{Title: "Still Saved"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, remote.StatusSuccess, resp.Status)
}

func TestAnalytics(t *testing.T) {
	r := setupServer(t)

	_, resp := call(t, r, "/api/query", remote.FnGetUserStats, remote.UserIDArgs{UserID: "user-1"})
	var us types.UserStats
	require.NoError(t, json.Unmarshal(resp.Value, &us))
	assert.Equal(t, 2, us.CollectionsCount)
	assert.Equal(t, 4, us.TotalPropertiesInCollections)

	_, resp = call(t, r, "/api/query", remote.FnGetUserStats, remote.UserIDArgs{UserID: "user-2"})
	assert.Contains(t, string(resp.Value), `"lastActivity":null`)

	_, resp = call(t, r, "/api/query", remote.FnGetPropertyAnalytics, remote.PropertyIDArgs{PropertyID: "1"})
	var pa types.PropertyAnalytics
	require.NoError(t, json.Unmarshal(resp.Value, &pa))
	assert.Equal(t, 2, pa.TimesAddedToCollections)
}

func TestCORSPreflight(t *testing.T) {
	r := setupServer(t, WithAllowOrigins("http://localhost:3000"))
	req := httptest.NewRequest(http.MethodOptions, "/api/query", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestEveryFunctionRegistered(t *testing.T) {
	b := memory.NewBackend()
	queries, mutations := New(b).Functions()
	assert.Len(t, queries, 23)
	assert.Len(t, mutations, 15)
}
