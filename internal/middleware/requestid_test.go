package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequestID(t *testing.T) {
	const incoming = "123e4567-e89b-12d3-a456-426614174000"
	cases := []struct {
		name   string
		header string
		reuse  bool
	}{
		{name: "generated when absent", header: "", reuse: false},
		{name: "reused when valid", header: incoming, reuse: true},
		{name: "replaced when invalid", header: "not-a-uuid", reuse: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(RequestID())
			var seen string
			r.GET("/", func(c *gin.Context) {
				seen = c.GetString(RequestIDKey)
				c.String(200, "ok")
			})
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(RequestIDHeader, tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(RequestIDHeader)
			if got == "" || got != seen {
				t.Fatalf("header %q and context %q must match", got, seen)
			}
			if (got == tc.header) != tc.reuse {
				t.Fatalf("reuse=%v, header=%q", tc.reuse, got)
			}
		})
	}
}
