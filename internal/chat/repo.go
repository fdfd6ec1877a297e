package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repo struct {
	conversations *mongo.Collection
	messages      *mongo.Collection
}

func NewRepo(conversations, messages *mongo.Collection) *Repo {
	return &Repo{conversations: conversations, messages: messages}
}

func (r *Repo) CreateConversation(ctx context.Context, userID string) (string, error) {
	now := time.Now().UTC()
	res, err := r.conversations.InsertOne(ctx, Conversation{
		UserID:        userID,
		CreatedAt:     now,
		UpdatedAt:     now,
		MessagesCount: 0,
	})
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("chat: unexpected inserted id type")
	}
	return oid.Hex(), nil
}

// GetConversationByID returns nil for malformed ids and for missing documents.
// Malformed client-supplied ids are logged, not surfaced; callers treat both
// cases as absent.
func (r *Repo) GetConversationByID(ctx context.Context, id string) (*Conversation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		log.Printf("chat: malformed conversation id %q: %v", id, err)
		return nil, nil
	}

	var c Conversation
	if err := r.conversations.FindOne(ctx, bson.M{"_id": oid}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// ListConversationsByUser returns a user's conversations, newest first.
func (r *Repo) ListConversationsByUser(ctx context.Context, userID string) ([]Conversation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.conversations.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]Conversation, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// InsertMessage rejects a malformed conversation id with an error; unlike the
// read paths there is no document to soft-fail towards here.
func (r *Repo) InsertMessage(ctx context.Context, conversationID, sender, content, senderType string) (*Message, error) {
	oid, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		return nil, fmt.Errorf("chat: conversation id %q: %w", conversationID, err)
	}

	m := &Message{
		ConversationID: oid,
		Sender:         sender,
		Content:        content,
		SenderType:     senderType,
		CreatedAt:      time.Now().UTC(),
	}
	res, err := r.messages.InsertOne(ctx, m)
	if err != nil {
		return nil, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = id
	}
	return m, nil
}

// ListMessagesByConversation returns a conversation's messages, oldest first.
// A malformed id yields an empty slice, not an error.
func (r *Repo) ListMessagesByConversation(ctx context.Context, conversationID string, limit int) ([]Message, error) {
	oid, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		log.Printf("chat: malformed conversation id %q: %v", conversationID, err)
		return []Message{}, nil
	}
	if limit <= 0 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit))
	cur, err := r.messages.Find(ctx, bson.M{"conversation_id": oid}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]Message, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListLatestMessages returns the most recent messages, newest first. Same
// soft-fail policy as ListMessagesByConversation.
func (r *Repo) ListLatestMessages(ctx context.Context, conversationID string, limit int) ([]Message, error) {
	oid, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		log.Printf("chat: malformed conversation id %q: %v", conversationID, err)
		return []Message{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.messages.Find(ctx, bson.M{"conversation_id": oid}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]Message, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
