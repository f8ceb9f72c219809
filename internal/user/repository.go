package user

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/rubenhtun/luxora-store/internal/logger"
)

type Repository interface {
	Create(ctx context.Context, name, email, hashedPassword string) (User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	UpdatePhone(ctx context.Context, id primitive.ObjectID, phone string) (*User, error)
}

type repository struct {
	collection *mongo.Collection
}

func NewRepository(collection *mongo.Collection) Repository {
	return &repository{collection: collection}
}

func (r *repository) Create(ctx context.Context, name, email, hashedPassword string) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	u := User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Password:  hashedPassword,
		CreatedAt: time.Now(),
	}

	if _, err := r.collection.InsertOne(ctx, u); err != nil {
		// Unique index on email turns duplicate signups into E11000.
		if mongo.IsDuplicateKeyError(err) {
			return User{}, ErrEmailExists
		}
		logger.FromCtx(ctx).Error("db: failed to insert user",
			zap.String("email", email),
			zap.Error(err),
		)
		return User{}, err
	}

	return u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &u, nil
}

func (r *repository) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &u, nil
}

func (r *repository) UpdatePhone(ctx context.Context, id primitive.ObjectID, phone string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	after := options.After
	var u User
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"phone": phone}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&u)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &u, nil
}
