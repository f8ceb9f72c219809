package user

import (
	"context"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/rubenhtun/luxora-store/internal/logger"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,19}$`)

type Service interface {
	Register(ctx context.Context, name, email, password string) (User, error)
	Login(ctx context.Context, email, password string) (User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdatePhone(ctx context.Context, id, phone string) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, name, email, password string) (User, error) {
	log := logger.FromCtx(ctx)

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return User{}, err
	}

	u, err := s.repo.Create(ctx, name, strings.ToLower(email), hashed)
	if err != nil {
		log.Warn("failed to create user", zap.String("email", email), zap.Error(err))
		return User{}, err
	}

	log.Info("user registered",
		zap.String("user_id", u.ID.Hex()),
		zap.String("email", u.Email),
	)

	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		log.Debug("login: email not found", zap.String("email", email))
		return User{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Debug("login: password mismatch", zap.String("email", email))
		return User{}, ErrInvalidCredentials
	}

	return *u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.repo.FindByID(ctx, objID)
}

func (s *service) UpdatePhone(ctx context.Context, id, phone string) (*User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	phone = strings.TrimSpace(phone)
	if !phonePattern.MatchString(phone) {
		return nil, ErrInvalidPhone
	}

	u, err := s.repo.UpdatePhone(ctx, objID, phone)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("phone updated", zap.String("user_id", id))
	return u, nil
}
