package httpapi

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/chatbotbro/backend/internal/common"
	"github.com/chatbotbro/backend/internal/config"
	"github.com/chatbotbro/backend/internal/httpapi/handlers"
	"github.com/chatbotbro/backend/internal/httpapi/middleware"
)

func NewRouter(h *handlers.Handler, cfg config.Config) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(cors.Default())

	r.NoRoute(func(c *gin.Context) {
		p := c.Request.URL.Path
		if p == "/api" || strings.HasPrefix(p, "/api/") {
			common.Fail(c, http.StatusNotFound, "Endpoint not found")
			return
		}
		serveStatic(c, cfg.StaticDir)
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.GET("/health", h.Health)
	r.GET("/api", h.Index)

	api := r.Group("/api/chat")
	api.POST("/conversations", h.CreateConversation)
	api.GET("/conversations", h.ListConversations)
	api.POST("/conversations/:id/messages", h.SendMessage)
	api.GET("/conversations/:id/messages", h.ListMessages)
	api.GET("/audio/:id", h.GetAudio)

	return r
}

// serveStatic serves the front-end assets, falling back to the single-page
// index for any path that is not a file.
func serveStatic(c *gin.Context, dir string) {
	if dir == "" {
		common.Fail(c, http.StatusNotFound, "Endpoint not found")
		return
	}

	reqPath := strings.TrimPrefix(c.Request.URL.Path, "/")
	if reqPath == "" {
		reqPath = "index.html"
	}

	full := filepath.Join(dir, filepath.Clean("/"+reqPath))
	if info, err := os.Stat(full); err == nil && !info.IsDir() {
		c.File(full)
		return
	}
	c.File(filepath.Join(dir, "index.html"))
}
