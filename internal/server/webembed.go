package server

import (
	"net/http"

	webui "gemini-research-go/web"
	"github.com/gin-gonic/gin"
)

func serveEmbeddedFile(c *gin.Context, rel string, contentType string) {
	data, err := webui.AssetsFS.ReadFile(rel)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, contentType, data)
}

func registerWebUI(engine *gin.Engine) {
	engine.GET("/", func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		serveEmbeddedFile(c, "index.html", "text/html; charset=utf-8")
	})
	engine.GET("/app.js", func(c *gin.Context) {
		serveEmbeddedFile(c, "app.js", "application/javascript")
	})
}
