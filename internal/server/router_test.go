package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/snapreview/internal/config"
	"github.com/sevigo/snapreview/internal/core"
	"github.com/sevigo/snapreview/mocks"
)

func newTestRouter(t *testing.T, reviewer core.Reviewer) http.Handler {
	t.Helper()
	cfg := &config.Config{Server: config.ServerConfig{
		MaxBodyBytes:   1024,
		AllowedOrigins: []string{"*"},
	}}
	return NewRouter(cfg, reviewer, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	reviewer := mocks.NewMockReviewer(ctrl)
	reviewer.EXPECT().Review(gomock.Any(), core.ReviewRequest{Code: "a := 1", Language: "go"}).
		Return(&core.ReviewResponse{Review: "Looks good ✅"}, nil)

	srv := httptest.NewServer(newTestRouter(t, reviewer))
	defer srv.Close()

	t.Run("Liveness", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/")
		assert.NoError(t, err)
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, core.MsgServiceRunning, string(body))
	})

	t.Run("Health", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/health")
		assert.NoError(t, err)
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "OK", string(body))
	})

	t.Run("Review", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/review", "application/json", strings.NewReader(`{"code":"a := 1","language":"go"}`))
		assert.NoError(t, err)
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"review":"Looks good ✅"}`, string(body))
	})

	t.Run("Unknown route", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/nope")
		assert.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Wrong method", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/review")
		assert.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}

func TestRouter_CORSPreflight(t *testing.T) {
	ctrl := gomock.NewController(t)
	router := newTestRouter(t, mocks.NewMockReviewer(ctrl))

	req := httptest.NewRequest(http.MethodOptions, "/review", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}
