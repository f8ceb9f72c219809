package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/rubenhtun/luxora-store/internal/logger"
)

var ErrSessionNotFound = errors.New("session not found or expired")

// Session is a server-side refresh session. The session ID doubles as
// the opaque refresh token stored in the client cookie, so logout can
// revoke it.
type Session struct {
	ID        string             `bson:"_id"`
	UserID    primitive.ObjectID `bson:"user_id"`
	ExpiresAt time.Time          `bson:"expires_at"`
	CreatedAt time.Time          `bson:"created_at"`
}

type SessionRepository interface {
	Create(ctx context.Context, userID primitive.ObjectID, ttl time.Duration) (Session, error)
	Find(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type sessionRepository struct {
	collection *mongo.Collection
}

func NewSessionRepository(collection *mongo.Collection) SessionRepository {
	return &sessionRepository{collection: collection}
}

func (r *sessionRepository) Create(ctx context.Context, userID primitive.ObjectID, ttl time.Duration) (Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s := Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
		CreatedAt: time.Now(),
	}

	if _, err := r.collection.InsertOne(ctx, s); err != nil {
		logger.FromCtx(ctx).Error("db: failed to insert session",
			zap.String("user_id", userID.Hex()),
			zap.Error(err),
		)
		return Session{}, err
	}

	return s, nil
}

func (r *sessionRepository) Find(ctx context.Context, id string) (*Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s Session
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	// The TTL index cleans up lazily; an expired document may still be
	// present when looked up.
	if time.Now().After(s.ExpiresAt) {
		return nil, ErrSessionNotFound
	}

	return &s, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
