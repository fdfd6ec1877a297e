package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chatbotbro/backend/internal/chat"
	"github.com/chatbotbro/backend/internal/config"
	"github.com/chatbotbro/backend/internal/httpapi/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memRepo mirrors the Mongo repo's contract in memory, including the
// soft-fail behavior for malformed hex ids.
type memRepo struct {
	conversations []chat.Conversation
	messages      []chat.Message
}

func (m *memRepo) CreateConversation(_ context.Context, userID string) (string, error) {
	id := primitive.NewObjectID()
	m.conversations = append(m.conversations, chat.Conversation{
		ID:        id,
		UserID:    userID,
		CreatedAt: time.Now().UTC().Add(time.Duration(len(m.conversations)) * time.Millisecond),
		UpdatedAt: time.Now().UTC(),
	})
	return id.Hex(), nil
}

func (m *memRepo) GetConversationByID(_ context.Context, id string) (*chat.Conversation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	for _, c := range m.conversations {
		if c.ID == oid {
			out := c
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memRepo) ListConversationsByUser(_ context.Context, userID string) ([]chat.Conversation, error) {
	out := make([]chat.Conversation, 0)
	for _, c := range m.conversations {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memRepo) InsertMessage(_ context.Context, conversationID, sender, content, senderType string) (*chat.Message, error) {
	oid, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		return nil, err
	}
	msg := chat.Message{
		ID:             primitive.NewObjectID(),
		ConversationID: oid,
		Sender:         sender,
		Content:        content,
		SenderType:     senderType,
		CreatedAt:      time.Now().UTC().Add(time.Duration(len(m.messages)) * time.Millisecond),
	}
	m.messages = append(m.messages, msg)
	return &msg, nil
}

func (m *memRepo) ListMessagesByConversation(_ context.Context, conversationID string, limit int) ([]chat.Message, error) {
	oid, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		return []chat.Message{}, nil
	}
	out := make([]chat.Message, 0)
	for _, msg := range m.messages {
		if msg.ConversationID == oid {
			out = append(out, msg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memRepo) ListLatestMessages(ctx context.Context, conversationID string, limit int) ([]chat.Message, error) {
	msgs, err := m.ListMessagesByConversation(ctx, conversationID, limit)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

type echoReplier struct{}

func (echoReplier) Reply(_ context.Context, _ string) string { return "Bilkul bro!" }

func newTestRouter(repo *memRepo) *gin.Engine {
	svc := chat.NewService(repo, echoReplier{}, nil, nil)
	h := NewHandler(svc, config.Config{AudioDir: "/nonexistent"})

	r := gin.New()
	r.Use(middleware.Recovery())
	r.GET("/health", h.Health)
	r.POST("/api/chat/conversations", h.CreateConversation)
	r.GET("/api/chat/conversations", h.ListConversations)
	r.POST("/api/chat/conversations/:id/messages", h.SendMessage)
	r.GET("/api/chat/conversations/:id/messages", h.ListMessages)
	r.GET("/api/chat/audio/:id", h.GetAudio)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&memRepo{})
	w, body := doJSON(t, r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "healthy", body["status"])
	require.Equal(t, ServiceName, body["service"])
}

func TestCreateConversation(t *testing.T) {
	repo := &memRepo{}
	r := newTestRouter(repo)

	w, body := doJSON(t, r, http.MethodPost, "/api/chat/conversations", `{"user_id":"alex"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "success", body["status"])
	require.NotEmpty(t, body["conversation_id"])
	require.Equal(t, "alex", repo.conversations[0].UserID)
}

func TestCreateConversation_EmptyBodyDefaultsAnonymous(t *testing.T) {
	repo := &memRepo{}
	r := newTestRouter(repo)

	w, _ := doJSON(t, r, http.MethodPost, "/api/chat/conversations", "")
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, chat.DefaultUserID, repo.conversations[0].UserID)
}

func TestSendMessage_Turn(t *testing.T) {
	repo := &memRepo{}
	r := newTestRouter(repo)

	convID, _ := repo.CreateConversation(context.Background(), "alex")

	w, body := doJSON(t, r, http.MethodPost, "/api/chat/conversations/"+convID+"/messages",
		`{"message":"  hello bro  ","sender":"Alex"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "success", body["status"])
	require.Equal(t, "hello bro", body["user_message"])
	require.Equal(t, "Bilkul bro!", body["bot_response"])
	require.Equal(t, convID, body["conversation_id"])
	require.Nil(t, body["audio_url"])

	require.Len(t, repo.messages, 2)
	require.Equal(t, chat.SenderTypeUser, repo.messages[0].SenderType)
	require.Equal(t, chat.SenderTypeBot, repo.messages[1].SenderType)
}

func TestSendMessage_WhitespaceOnlyIs400(t *testing.T) {
	repo := &memRepo{}
	r := newTestRouter(repo)

	convID, _ := repo.CreateConversation(context.Background(), "alex")

	w, body := doJSON(t, r, http.MethodPost, "/api/chat/conversations/"+convID+"/messages",
		`{"message":"   \t  "}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "error", body["status"])
	require.Equal(t, "Empty message", body["message"])
	require.Empty(t, repo.messages)
}

func TestSendMessage_MalformedConversationIDIs500(t *testing.T) {
	r := newTestRouter(&memRepo{})

	w, body := doJSON(t, r, http.MethodPost, "/api/chat/conversations/not-hex/messages",
		`{"message":"hello"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "error", body["status"])
}

func TestListMessages_RoundTripAndIdempotentReads(t *testing.T) {
	repo := &memRepo{}
	r := newTestRouter(repo)

	convID, _ := repo.CreateConversation(context.Background(), "alex")
	doJSON(t, r, http.MethodPost, "/api/chat/conversations/"+convID+"/messages",
		`{"message":"first","sender":"Alex"}`)
	doJSON(t, r, http.MethodPost, "/api/chat/conversations/"+convID+"/messages",
		`{"message":"second","sender":"Alex"}`)

	w1, body1 := doJSON(t, r, http.MethodGet, "/api/chat/conversations/"+convID+"/messages", "")
	require.Equal(t, http.StatusOK, w1.Code)

	msgs := body1["messages"].([]any)
	require.Len(t, msgs, 4)

	first := msgs[0].(map[string]any)
	require.Equal(t, "Alex", first["sender"])
	require.Equal(t, "first", first["content"])
	require.Equal(t, chat.SenderTypeUser, first["sender_type"])
	require.Equal(t, convID, first["conversation_id"])

	// ascending created_at order: user, bot, user, bot
	require.Equal(t, chat.SenderTypeBot, msgs[1].(map[string]any)["sender_type"])
	require.Equal(t, "second", msgs[2].(map[string]any)["content"])

	w2, _ := doJSON(t, r, http.MethodGet, "/api/chat/conversations/"+convID+"/messages", "")
	require.JSONEq(t, w1.Body.String(), w2.Body.String())
}

func TestListMessages_MalformedIDIsEmptyList(t *testing.T) {
	r := newTestRouter(&memRepo{})

	w, body := doJSON(t, r, http.MethodGet, "/api/chat/conversations/not-hex/messages", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "success", body["status"])
	require.NotNil(t, body["messages"])
	require.Empty(t, body["messages"])
}

func TestListConversations_NewestFirst(t *testing.T) {
	repo := &memRepo{}
	r := newTestRouter(repo)

	first, _ := repo.CreateConversation(context.Background(), "alex")
	second, _ := repo.CreateConversation(context.Background(), "alex")
	_, _ = repo.CreateConversation(context.Background(), "someone-else")

	w, body := doJSON(t, r, http.MethodGet, "/api/chat/conversations?user_id=alex", "")
	require.Equal(t, http.StatusOK, w.Code)

	convs := body["conversations"].([]any)
	require.Len(t, convs, 2)
	require.Equal(t, second, convs[0].(map[string]any)["_id"])
	require.Equal(t, first, convs[1].(map[string]any)["_id"])
}

func TestGetAudio_NotFound(t *testing.T) {
	r := newTestRouter(&memRepo{})

	w, body := doJSON(t, r, http.MethodGet, "/api/chat/audio/not-hex", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "error", body["status"])

	// well-formed id but no file on disk
	w2, _ := doJSON(t, r, http.MethodGet, "/api/chat/audio/"+primitive.NewObjectID().Hex(), "")
	require.Equal(t, http.StatusNotFound, w2.Code)
}
