package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/storepulse/backend/internal/db"
)

type downPinger struct{}

func (downPinger) Ping(context.Context) error { return errors.New("connection refused") }

func healthz(t *testing.T, p Pinger) int {
	t.Helper()
	h := &Handler{DB: p, Logger: zerolog.Nop()}
	r := gin.New()
	r.GET("/healthz", h.Healthz)
	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestHealthzDatabaseDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	if code := healthz(t, downPinger{}); code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", code)
	}
}

func TestHealthzIntegration(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	store, err := db.New(context.Background(), url)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	defer store.Close()

	if code := healthz(t, store); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}
