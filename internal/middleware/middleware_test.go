package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/quotepulse/internal/domain/dto"
)

type assertErr struct{}

func (assertErr) Error() string { return "boom" }

func TestErrorHandler(t *testing.T) {
	cases := []struct {
		name    string
		handler gin.HandlerFunc
		want    int
		message string
	}{
		{
			name:    "error without status",
			handler: func(c *gin.Context) { _ = c.Error(assertErr{}) },
			want:    http.StatusInternalServerError,
			message: "Internal Server Error",
		},
		{
			name: "error with status",
			handler: func(c *gin.Context) {
				_ = c.AbortWithError(http.StatusBadGateway, assertErr{})
			},
			want:    http.StatusBadGateway,
			message: "Bad Gateway",
		},
		{
			name:    "no error",
			handler: func(c *gin.Context) { c.String(http.StatusOK, "ok") },
			want:    http.StatusOK,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(ErrorHandler)
			r.GET("/", tc.handler)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			if w.Code != tc.want {
				t.Fatalf("code=%d want %d", w.Code, tc.want)
			}
			if tc.message == "" {
				return
			}
			var body dto.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json %q: %v", w.Body.String(), err)
			}
			if body.Message != tc.message || body.ErrorDetails != "boom" {
				t.Fatalf("unexpected body %+v", body)
			}
		})
	}
}

func TestErrorHandler_KeepsHandlerBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler)
	r.GET("/", func(c *gin.Context) {
		AbortWithError(c, http.StatusNotFound, "invalid symbol", assertErr{})
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	var body dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("body must be a single json document: %v (%q)", err, w.Body.String())
	}
	if w.Code != http.StatusNotFound || body.Message != "invalid symbol" {
		t.Fatalf("unexpected response %d %+v", w.Code, body)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), RecoveryMiddleware())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("code=%d", w.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	cases := []struct {
		name   string
		reqs   int
		lim    int
		expect int
	}{
		{name: "within limit", reqs: 2, lim: 3, expect: http.StatusOK},
		{name: "at limit", reqs: 3, lim: 3, expect: http.StatusOK},
		{name: "exceed limit", reqs: 5, lim: 3, expect: http.StatusTooManyRequests},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(RateLimiter(tc.lim, time.Minute))
			r.GET("/", func(c *gin.Context) { c.String(200, "ok") })
			var last *httptest.ResponseRecorder
			for i := 0; i < tc.reqs; i++ {
				last = httptest.NewRecorder()
				r.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/", nil))
			}
			if last.Code != tc.expect {
				t.Fatalf("expected %d, got %d", tc.expect, last.Code)
			}
			if tc.expect == http.StatusTooManyRequests && last.Header().Get("Retry-After") != "60" {
				t.Fatalf("Retry-After=%q", last.Header().Get("Retry-After"))
			}
		})
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	now := time.Date(2025, 9, 12, 14, 0, 0, 0, time.UTC)
	rl := &rateLimiter{clients: map[string]*client{}, limit: 1, window: time.Minute, now: func() time.Time { return now }}

	if !rl.allow("1.2.3.4") {
		t.Fatalf("first request must pass")
	}
	if rl.allow("1.2.3.4") {
		t.Fatalf("second request in window must be limited")
	}
	if !rl.allow("5.6.7.8") {
		t.Fatalf("other clients are independent")
	}
	now = now.Add(time.Minute)
	if !rl.allow("1.2.3.4") {
		t.Fatalf("new window must reset the count")
	}
	if _, ok := rl.clients["5.6.7.8"]; ok {
		t.Fatalf("expired client should be swept")
	}
}

func TestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Timeout(50*time.Millisecond, "/stream"))
	var bounded, unbounded bool
	r.GET("/api", func(c *gin.Context) {
		_, bounded = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})
	r.GET("/stream", func(c *gin.Context) {
		_, unbounded = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/stream", nil))
	if !bounded {
		t.Fatalf("api request should carry a deadline")
	}
	if unbounded {
		t.Fatalf("skipped path must not carry a deadline")
	}
}

func TestAbortWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/err", func(c *gin.Context) {
		AbortWithError(c, http.StatusBadRequest, "bad stuff", assertErr{})
		if len(c.Errors) != 1 {
			t.Errorf("error should be attached to the context")
		}
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/err", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct == "" {
		t.Fatalf("expected content-type set")
	}
}
