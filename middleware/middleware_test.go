package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"civictrack/models"
	"civictrack/repository"
	"civictrack/service"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(t *testing.T) (*AuthMiddleware, string, string) {
	t.Helper()
	users := service.NewUserService(repository.NewUserRepository(), "test-secret", 1)
	_, err := users.RegisterCitizen(&models.RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "secret123"})
	require.NoError(t, err)
	_, err = users.RegisterGovernment(&models.RegisterGovernmentRequest{GovernmentID: "GOV-1", Name: "Officer", Password: "secret123"})
	require.NoError(t, err)

	citizen, err := users.Login("asha@example.com", "secret123")
	require.NoError(t, err)
	official, err := users.Login("GOV-1", "secret123")
	require.NoError(t, err)
	return NewAuthMiddleware(users), citizen.Token, official.Token
}

func whoami(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Write([]byte(user.Name))
}

func serve(h http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	auth, citizenToken, _ := newAuth(t)
	h := auth.RequireAuth(http.HandlerFunc(whoami))

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token " + citizenToken, http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + citizenToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, tt.header)
			assert.Equal(t, tt.code, rec.Code)
		})
	}

	rec := serve(h, "Bearer "+citizenToken)
	assert.Equal(t, "Asha", rec.Body.String())
}

func TestRequireRole(t *testing.T) {
	auth, citizenToken, officialToken := newAuth(t)
	h := auth.RequireRole(models.RoleGovernment)(http.HandlerFunc(whoami))

	rec := serve(h, "Bearer "+citizenToken)
	require.Equal(t, http.StatusForbidden, rec.Code)
	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Forbidden", body.Error)
	assert.Equal(t, http.StatusForbidden, body.Code)

	rec = serve(h, "Bearer "+officialToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Officer", rec.Body.String())
}

func TestCORSAnswersPreflight(t *testing.T) {
	called := false
	h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	req := httptest.NewRequest(http.MethodOptions, "/api/citizen/complaints", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, called)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestHTTPMetricsUsesRouteTemplate(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	router := mux.NewRouter()
	router.Use(m.Middleware)
	router.HandleFunc("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/items/{id}", "GET", "418")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}
