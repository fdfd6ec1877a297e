package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chatbotbro/backend/internal/chat"
	"github.com/chatbotbro/backend/internal/config"
)

const ServiceName = "ChatBot Bro Backend"

type Handler struct {
	Svc *chat.Service
	Cfg config.Config
}

func NewHandler(svc *chat.Service, cfg config.Config) *Handler {
	return &Handler{Svc: svc, Cfg: cfg}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": ServiceName,
	})
}

func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to ChatBot Bro Backend!",
		"status":  "running",
		"endpoints": gin.H{
			"create_conversation": "POST /api/chat/conversations",
			"send_message":        "POST /api/chat/conversations/<id>/messages",
			"get_messages":        "GET /api/chat/conversations/<id>/messages",
			"get_conversations":   "GET /api/chat/conversations",
		},
	})
}
