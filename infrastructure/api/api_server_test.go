package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/intervalgen"
	"github.com/helixml/intervalgen/infrastructure/api"
)

func newTestClient(t *testing.T) *intervalgen.Client {
	t.Helper()
	client, err := intervalgen.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestAPIServer_Health(t *testing.T) {
	handler := api.NewAPIServer(newTestClient(t), nil, "1.0.0").Handler()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAPIServer_Intervals(t *testing.T) {
	handler := api.NewAPIServer(newTestClient(t), nil, "1.0.0").Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/intervals?begin=2011-01-01&end=2015-12-31&granularity=y", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var doc struct {
		Data  []json.RawMessage `json:"data"`
		Links struct {
			Self string `json:"self"`
		} `json:"links"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Len(t, doc.Data, 5)
	assert.Contains(t, doc.Links.Self, "granularity=y")
}

func TestAPIServer_CORS(t *testing.T) {
	handler := api.NewAPIServer(newTestClient(t), []string{"https://example.com"}, "1.0.0").Handler()

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"https://example.com", true},
		{"https://evil.example", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/v1/intervals", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if tt.allowed {
				assert.Equal(t, tt.origin, w.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestAPIServer_CustomRouter(t *testing.T) {
	apiServer := api.NewAPIServer(newTestClient(t), nil, "1.0.0")
	router := apiServer.Router()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Custom", "yes")
			next.ServeHTTP(w, r)
		})
	})
	apiServer.MountRoutes()

	w := httptest.NewRecorder()
	apiServer.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "yes", w.Header().Get("X-Custom"))
}
