package health_controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func up(context.Context) error { return nil }
func down(context.Context) error { return errors.New("connection refused") }

func TestReady(t *testing.T) {
	tests := []struct {
		name   string
		checks []Check
		want   int
		down   string
	}{
		{"all up", []Check{{"postgres", up}, {"redis", up}}, http.StatusOK, ""},
		{"redis down", []Check{{"postgres", up}, {"redis", down}}, http.StatusServiceUnavailable, "redis"},
		{"no checks", nil, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health/ready", NewHandler(tt.checks...).Ready)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
			require.Equal(t, tt.want, w.Code)

			var body struct {
				Data map[string]string `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Len(t, body.Data, len(tt.checks))
			if tt.down != "" {
				assert.Equal(t, "down: connection refused", body.Data[tt.down])
			}
		})
	}
}

func TestLive(t *testing.T) {
	r := gin.New()
	r.GET("/health", NewHandler().Live)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"up"`)
}
