package chat

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SenderTypeUser = "user"
	SenderTypeBot  = "bot"
)

// Conversation groups the messages of one user session.
type Conversation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
	// MessagesCount is written once at creation and never incremented; kept
	// for document compatibility with existing data.
	MessagesCount int `bson:"messages_count" json:"messages_count"`
}

// Message is one turn's content, from either the user or the bot.
type Message struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ConversationID primitive.ObjectID `bson:"conversation_id" json:"conversation_id"`
	Sender         string             `bson:"sender" json:"sender"`
	Content        string             `bson:"content" json:"content"`
	SenderType     string             `bson:"sender_type" json:"sender_type"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}
