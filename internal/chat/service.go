package chat

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

const (
	BotSender     = "ChatBot Bro"
	DefaultUserID = "anonymous"
	DefaultSender = "User"
)

type Repository interface {
	CreateConversation(ctx context.Context, userID string) (string, error)
	GetConversationByID(ctx context.Context, id string) (*Conversation, error)
	ListConversationsByUser(ctx context.Context, userID string) ([]Conversation, error)
	InsertMessage(ctx context.Context, conversationID, sender, content, senderType string) (*Message, error)
	ListMessagesByConversation(ctx context.Context, conversationID string, limit int) ([]Message, error)
	ListLatestMessages(ctx context.Context, conversationID string, limit int) ([]Message, error)
}

type Replier interface {
	Reply(ctx context.Context, userText string) string
}

type Synthesizer interface {
	Enabled() bool
	Synthesize(ctx context.Context, text, conversationID string) error
}

// TurnEvent is published after each completed turn for downstream consumers.
type TurnEvent struct {
	EventID        string    `json:"event_id"`
	ConversationID string    `json:"conversation_id"`
	UserMessage    string    `json:"user_message"`
	BotResponse    string    `json:"bot_response"`
	Audio          bool      `json:"audio"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	PublishTurn(ctx context.Context, ev TurnEvent) error
}

type Service struct {
	repo   Repository
	bot    Replier
	speech Synthesizer    // nil when synthesis is disabled
	events EventPublisher // nil when events are disabled
}

func NewService(repo Repository, bot Replier, speech Synthesizer, events EventPublisher) *Service {
	return &Service{repo: repo, bot: bot, speech: speech, events: events}
}

type TurnResult struct {
	ConversationID string
	UserMessage    string
	BotResponse    string
	AudioURL       *string
}

func (s *Service) CreateConversation(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		userID = DefaultUserID
	}
	return s.repo.CreateConversation(ctx, userID)
}

func (s *Service) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	return s.repo.GetConversationByID(ctx, id)
}

func (s *Service) ListConversations(ctx context.Context, userID string) ([]Conversation, error) {
	if userID == "" {
		userID = DefaultUserID
	}
	convs, err := s.repo.ListConversationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if convs == nil {
		convs = []Conversation{}
	}
	return convs, nil
}

// SendMessage runs one chat turn: persist the user message, generate a reply,
// persist the bot message, then optionally synthesize audio and publish a turn
// event. The two inserts are independent operations; a crash between them
// leaves a user message without a reply.
func (s *Service) SendMessage(ctx context.Context, conversationID, sender, content string) (*TurnResult, error) {
	if sender == "" {
		sender = DefaultSender
	}

	if _, err := s.repo.InsertMessage(ctx, conversationID, sender, content, SenderTypeUser); err != nil {
		return nil, err
	}

	reply := s.bot.Reply(ctx, content)

	if _, err := s.repo.InsertMessage(ctx, conversationID, BotSender, reply, SenderTypeBot); err != nil {
		return nil, err
	}

	var audioURL *string
	if s.speech != nil && s.speech.Enabled() {
		if err := s.speech.Synthesize(ctx, reply, conversationID); err != nil {
			log.Printf("chat: synthesize failed conversation=%s: %v", conversationID, err)
		} else {
			u := "/api/chat/audio/" + conversationID
			audioURL = &u
		}
	}

	if s.events != nil {
		ev := TurnEvent{
			EventID:        uuid.NewString(),
			ConversationID: conversationID,
			UserMessage:    content,
			BotResponse:    reply,
			Audio:          audioURL != nil,
			OccurredAt:     time.Now().UTC(),
		}
		if err := s.events.PublishTurn(ctx, ev); err != nil {
			log.Printf("chat: publish turn event conversation=%s: %v", conversationID, err)
		}
	}

	return &TurnResult{
		ConversationID: conversationID,
		UserMessage:    content,
		BotResponse:    reply,
		AudioURL:       audioURL,
	}, nil
}

func (s *Service) ListMessages(ctx context.Context, conversationID string, limit int) ([]Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	msgs, err := s.repo.ListMessagesByConversation(ctx, conversationID, limit)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []Message{}
	}
	return msgs, nil
}

func (s *Service) ListLatestMessages(ctx context.Context, conversationID string, limit int) ([]Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	msgs, err := s.repo.ListLatestMessages(ctx, conversationID, limit)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []Message{}
	}
	return msgs, nil
}
