package middlewares_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"portal/middlewares"
)

func cacheServer(t *testing.T) (*gin.Engine, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	t.Cleanup(func() { mr.Close() })
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	hits := 0
	s := gin.New()
	s.Use(middlewares.ResponseCache(rdb, 30*time.Second))
	s.GET("/events", func(c *gin.Context) {
		hits++
		c.JSON(200, []string{"e1"})
	})
	s.GET("/registrations", func(c *gin.Context) {
		hits++
		c.JSON(200, gin.H{"eventIds": []string{}})
	})
	return s, &hits
}

// second identical GET /events is served from Redis, not the handler
func TestResponseCache_HitOnSecondRead(t *testing.T) {
	s, hits := cacheServer(t)

	w1 := httptest.NewRecorder()
	s.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/events", nil))
	if w1.Code != 200 {
		t.Fatalf("first read: %d", w1.Code)
	}
	if w1.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("first read: want X-Cache MISS, got %q", w1.Header().Get("X-Cache"))
	}

	w2 := httptest.NewRecorder()
	s.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/events", nil))
	if w2.Code != 200 {
		t.Fatalf("second read: %d", w2.Code)
	}
	if w2.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("want X-Cache HIT, got %q", w2.Header().Get("X-Cache"))
	}
	if *hits != 1 {
		t.Fatalf("handler ran %d times, want 1", *hits)
	}
	if w2.Body.String() != w1.Body.String() {
		t.Fatalf("cached body differs: %q vs %q", w2.Body.String(), w1.Body.String())
	}
	// a hit must serve exactly one body, not the cached copy plus a fresh one
	if !json.Valid(w2.Body.Bytes()) {
		t.Fatalf("hit response is not a single JSON document: %q", w2.Body.String())
	}
}

// per-user reads have no cache key and always reach the handler
func TestResponseCache_SkipsPerUserRoutes(t *testing.T) {
	s, hits := cacheServer(t)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/registrations", nil))
		if w.Code != 200 {
			t.Fatalf("read %d: %d", i+1, w.Code)
		}
	}
	if *hits != 2 {
		t.Fatalf("handler ran %d times, want 2", *hits)
	}
}
