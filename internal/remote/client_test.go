package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/propai/pkg/types"
)

func TestClientSendsPathAndArgs(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/mutation", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.Write([]byte(`{"status":"success","value":3}`))
	}))
	defer srv.Close()

	var n int
	err := NewClient(srv.URL, nil).Mutation(context.Background(), FnClearUserMessages, UserIDArgs{UserID: "u1"}, &n)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, FnClearUserMessages, got.Path)
	assert.JSONEq(t, `{"userId":"u1"}`, string(got.Args))
}

func TestClientNilArgsSendsEmptyObject(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"status":"success","value":[]}`))
	}))
	defer srv.Close()

	var out []types.Property
	require.NoError(t, NewClient(srv.URL, nil).Query(context.Background(), FnGetProperties, nil, &out))
	assert.JSONEq(t, `{}`, string(got.Args))
}

func TestClientErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"email taken", http.StatusConflict, `{"status":"error","errorMessage":"taken","errorData":{"code":"EMAIL_TAKEN"}}`, types.ErrEmailTaken},
		{"invalid argument", http.StatusBadRequest, `{"status":"error","errorMessage":"bad","errorData":{"code":"INVALID_ARGUMENT"}}`, types.ErrInvalidData},
		{"invalid role", http.StatusBadRequest, `{"status":"error","errorMessage":"bad","errorData":{"code":"INVALID_ROLE"}}`, types.ErrInvalidRole},
		{"unknown function", http.StatusNotFound, `{"status":"error","errorMessage":"nope","errorData":{"code":"NOT_FOUND_FUNCTION"}}`, types.ErrTransport},
		{"internal", http.StatusInternalServerError, `{"status":"error","errorMessage":"boom","errorData":{"code":"INTERNAL"}}`, types.ErrTransport},
		{"no error data", http.StatusInternalServerError, `{"status":"error","errorMessage":"boom"}`, types.ErrTransport},
		{"non-JSON body", http.StatusBadGateway, `<html>bad gateway</html>`, types.ErrTransport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := NewClient(srv.URL, nil).Query(context.Background(), FnGetUsers, nil, nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClientRemoteErrorDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"status":"error","errorMessage":"user with this email already exists","errorData":{"code":"EMAIL_TAKEN"}}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, nil).Mutation(context.Background(), FnCreateUser, types.User{}, nil)
	var remoteErr *Error
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, FnCreateUser, remoteErr.Path)
	assert.Equal(t, CodeEmailTaken, remoteErr.Code)
	assert.Contains(t, err.Error(), "already exists")
}

func TestClientDialFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewClient(url, nil).Query(context.Background(), FnGetUsers, nil, nil)
	assert.ErrorIs(t, err, types.ErrTransport)
	assert.ErrorIs(t, NewClient(url, nil).Health(context.Background()), types.ErrTransport)
}

func TestClientCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewClient(srv.URL, nil).Query(ctx, FnGetUsers, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
