package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flipvault-web/apperrors"
	"flipvault-web/config"
	"flipvault-web/logger"
)

func newTestBackend(t *testing.T, handler http.Handler) *Backend {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewBackend(config.BackendConfig{
		BaseURL:      srv.URL,
		ServiceToken: "svc-token",
		Timeout:      2 * time.Second,
	}, logger.NewTestLogger(t))
}

func TestLogin(t *testing.T) {
	backend := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice", body["username"])

		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "plan": "Pro"})
	}))

	res, err := backend.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Pro", res.Plan)
}

func TestLogin_BadCredentialsIsAuthFailure(t *testing.T) {
	backend := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "invalid credentials"})
	}))

	_, err := backend.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.IsAuthFailure(err))
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestGetUserPlan_EmptyPlanIsAnError(t *testing.T) {
	backend := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"plan": ""})
	}))

	_, err := backend.GetUserPlan(context.Background(), "alice")
	require.Error(t, err)
	assert.True(t, apperrors.IsNetworkFailure(err))
}

func TestGetUserPlan_MalformedBodyIsNetworkFailure(t *testing.T) {
	backend := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	}))

	_, err := backend.GetUserPlan(context.Background(), "alice")
	require.Error(t, err)
	assert.True(t, apperrors.IsNetworkFailure(err))
}

func TestGetUserPlan_ConnectionRefusedIsNetworkFailure(t *testing.T) {
	backend := NewBackend(config.BackendConfig{
		BaseURL: "http://127.0.0.1:1", // nothing listens here
		Timeout: 500 * time.Millisecond,
	}, logger.NewTestLogger(t))

	_, err := backend.GetUserPlan(context.Background(), "alice")
	require.Error(t, err)
	assert.True(t, apperrors.IsNetworkFailure(err))
}

func TestUpdateUserPlan_SendsServiceToken(t *testing.T) {
	backend := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/users/42/plan", r.URL.Path)
		assert.Equal(t, "Bearer svc-token", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]string{"username": "bob", "plan": "Pro"})
	}))

	upd, err := backend.UpdateUserPlan(context.Background(), "42", "Pro")
	require.NoError(t, err)
	assert.Equal(t, "bob", upd.Username)
	assert.Equal(t, "Pro", upd.Plan)
}

func TestUpdateUserPlan_MissingServiceTokenIsNotConfigured(t *testing.T) {
	backend := NewBackend(config.BackendConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: time.Second,
	}, logger.NewTestLogger(t))

	_, err := backend.UpdateUserPlan(context.Background(), "42", "Pro")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotConfigured(err), "privileged calls must fail fast without a service token")
}

func TestUpdateUserPlan_BadRequestIsValidationFailure(t *testing.T) {
	backend := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "unknown plan"})
	}))

	_, err := backend.UpdateUserPlan(context.Background(), "42", "Pro")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationFailure(err))
}

func TestCreateCheckoutSession(t *testing.T) {
	backend := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/create-checkout-session", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"sessionId": "cs_test_123"})
	}))

	id, err := backend.CreateCheckoutSession(context.Background(), "Pro", "alice")
	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", id)
}

func TestSearchProducts_EscapesQuery(t *testing.T) {
	backend := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "jordan 4", r.URL.Query().Get("query"))
		json.NewEncoder(w).Encode([]map[string]interface{}{{"id": 1, "name": "Jordan 4 Bred"}})
	}))

	products, err := backend.SearchProducts(context.Background(), "jordan 4")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Jordan 4 Bred", products[0].Name)
}

func TestServerErrorIsNetworkFailure(t *testing.T) {
	backend := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "database down"})
	}))

	_, err := backend.GetUsers(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsNetworkFailure(err))
	assert.Contains(t, err.Error(), "database down")
}
