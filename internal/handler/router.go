package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouterConfig configures NewRouter.
type RouterConfig struct {
	AllowOrigin string
}

// NewRouter registers the SQL endpoints on a fresh engine.
func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	if cfg.AllowOrigin == "" {
		cfg.AllowOrigin = "*"
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(h.logger), CORS(cfg.AllowOrigin))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	r.GET("/ping", Ping)

	r.GET("/sql/*query", h.ReadQueryHandler)
	r.POST("/sql", h.WriteQueryHandler)
	r.POST("/insert-dummy", h.InsertDummyHandler)

	return r
}
