package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func TestRequestLoggerModelFieldOnlyWhenSet(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.SetFormatter(&log.JSONFormatter{})
	defer func() {
		log.SetOutput(os.Stdout)
	}()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/generate", func(c *gin.Context) {
		c.Set("model", "models/gemini-pro")
		c.Status(http.StatusOK)
	})
	r.GET("/plain", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/generate", nil))
	if !strings.Contains(buf.String(), `"model":"models/gemini-pro"`) {
		t.Fatalf("generation request line lost the model field: %s", buf.String())
	}

	buf.Reset()
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plain", nil))
	if strings.Contains(buf.String(), `"model"`) {
		t.Fatalf("plain request line should carry no model field: %s", buf.String())
	}
}
