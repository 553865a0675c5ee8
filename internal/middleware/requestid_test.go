package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newRIDRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})
	return r
}

func TestRequestIDGenerated(t *testing.T) {
	r := newRIDRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	rid := w.Header().Get("X-Request-ID")
	if _, err := uuid.Parse(rid); err != nil {
		t.Fatalf("generated request id %q is not a uuid: %v", rid, err)
	}
	if w.Body.String() != rid {
		t.Fatalf("context id %q does not match header %q", w.Body.String(), rid)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	r := newRIDRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "caller-supplied")
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "caller-supplied" {
		t.Fatalf("request id %q, want caller value", got)
	}
}

func TestRequestIDBlankHeaderReplaced(t *testing.T) {
	r := newRIDRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "   ")
	r.ServeHTTP(w, req)

	if _, err := uuid.Parse(w.Header().Get("X-Request-ID")); err != nil {
		t.Fatalf("blank header should be replaced with a minted id: %v", err)
	}
}
