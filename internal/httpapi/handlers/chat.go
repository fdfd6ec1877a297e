package handlers

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chatbotbro/backend/internal/common"
	"github.com/chatbotbro/backend/internal/speech"
)

type createConversationReq struct {
	UserID string `json:"user_id"`
}

func (h *Handler) CreateConversation(c *gin.Context) {
	var req createConversationReq
	_ = c.ShouldBindJSON(&req) // body is optional

	id, err := h.Svc.CreateConversation(c.Request.Context(), req.UserID)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	common.Created(c, gin.H{"conversation_id": id})
}

type sendMessageReq struct {
	Message string `json:"message"`
	Sender  string `json:"sender"`
}

func (h *Handler) SendMessage(c *gin.Context) {
	conversationID := c.Param("id")

	var req sendMessageReq
	_ = c.ShouldBindJSON(&req)

	content := strings.TrimSpace(req.Message)
	if content == "" {
		common.Fail(c, http.StatusBadRequest, "Empty message")
		return
	}

	res, err := h.Svc.SendMessage(c.Request.Context(), conversationID, req.Sender, content)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	common.OK(c, gin.H{
		"user_message":    res.UserMessage,
		"bot_response":    res.BotResponse,
		"audio_url":       res.AudioURL,
		"conversation_id": res.ConversationID,
	})
}

func (h *Handler) ListMessages(c *gin.Context) {
	msgs, err := h.Svc.ListMessages(c.Request.Context(), c.Param("id"), 0)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	common.OK(c, gin.H{"messages": msgs})
}

func (h *Handler) ListConversations(c *gin.Context) {
	convs, err := h.Svc.ListConversations(c.Request.Context(), c.Query("user_id"))
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	common.OK(c, gin.H{"conversations": convs})
}

func (h *Handler) GetAudio(c *gin.Context) {
	conversationID := c.Param("id")

	// Only ObjectID hex reaches the filesystem; everything else is Not Found.
	if _, err := primitive.ObjectIDFromHex(conversationID); err != nil {
		common.Fail(c, http.StatusNotFound, "Audio not found")
		return
	}

	path := speech.AudioPath(h.Cfg.AudioDir, conversationID)
	if _, err := os.Stat(path); err != nil {
		common.Fail(c, http.StatusNotFound, "Audio not found")
		return
	}

	c.Header("Content-Type", "audio/mp3")
	c.File(path)
}
