package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(log))
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("hi")) })
	r.Get("/fail", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) })

	tests := []struct {
		path      string
		wantCode  float64
		wantLevel string
	}{
		{"/ok", 200, "INFO"},
		{"/fail", 500, "ERROR"},
	}

	for _, tt := range tests {
		buf.Reset()
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, tt.wantLevel, entry["level"])
		assert.Equal(t, tt.path, entry["path"])
		assert.Equal(t, tt.wantCode, entry["status"])
		assert.NotEmpty(t, entry["request_id"])
	}
}
