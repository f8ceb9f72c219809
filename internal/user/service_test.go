package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, name, email, hashedPassword string) (User, error) {
	args := m.Called(ctx, name, email, hashedPassword)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) UpdatePhone(ctx context.Context, id primitive.ObjectID, phone string) (*User, error) {
	args := m.Called(ctx, id, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	email := "test@example.com"
	password := "password123"

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		expected := User{
			ID:        primitive.NewObjectID(),
			Name:      "Test User",
			Email:     email,
			Password:  "hashed_password",
			CreatedAt: time.Now(),
		}

		mockRepo.On("Create", ctx, "Test User", email, mock.AnythingOfType("string")).Return(expected, nil)

		u, err := svc.Register(ctx, "Test User", email, password)

		assert.NoError(t, err)
		assert.Equal(t, expected, u)
		mockRepo.AssertExpectations(t)
	})

	t.Run("EmailExists", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("Create", ctx, "Test User", email, mock.Anything).Return(User{}, ErrEmailExists)

		_, err := svc.Register(ctx, "Test User", email, password)

		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("Email lowercased", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("Create", ctx, "Test User", "mixed@example.com", mock.Anything).Return(User{}, nil)

		_, err := svc.Register(ctx, "Test User", "MiXeD@Example.COM", password)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	email := "test@example.com"
	password := "password123"

	hashed, err := HashPassword(password)
	assert.NoError(t, err)

	stored := &User{
		ID:       primitive.NewObjectID(),
		Email:    email,
		Password: hashed,
	}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("FindByEmail", ctx, email).Return(stored, nil)

		u, err := svc.Login(ctx, email, password)

		assert.NoError(t, err)
		assert.Equal(t, stored.ID, u.ID)
	})

	t.Run("Unknown email", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("FindByEmail", ctx, email).Return(nil, ErrNotFound)

		_, err := svc.Login(ctx, email, password)

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Wrong password", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("FindByEmail", ctx, email).Return(stored, nil)

		_, err := svc.Login(ctx, email, "wrongpass")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_UpdatePhone(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		updated := &User{ID: id, Phone: "+1 555-0100"}
		mockRepo.On("UpdatePhone", ctx, id, "+1 555-0100").Return(updated, nil)

		u, err := svc.UpdatePhone(ctx, id.Hex(), "+1 555-0100")

		assert.NoError(t, err)
		assert.Equal(t, "+1 555-0100", u.Phone)
	})

	t.Run("Invalid phone rejected locally", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		_, err := svc.UpdatePhone(ctx, id.Hex(), "not-a-phone")

		assert.ErrorIs(t, err, ErrInvalidPhone)
		mockRepo.AssertNotCalled(t, "UpdatePhone")
	})

	t.Run("Bad id", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		_, err := svc.UpdatePhone(ctx, "nothex", "+1 555-0100")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret")
	assert.NoError(t, err)
	assert.NotEqual(t, "secret", hash)

	assert.True(t, CheckPasswordHash("secret", hash))
	assert.False(t, CheckPasswordHash("other", hash))
}

func TestUserProfile(t *testing.T) {
	u := User{
		ID:       primitive.NewObjectID(),
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "hash",
		Phone:    "+1 555-0100",
	}

	p := u.Profile()

	assert.Equal(t, u.ID.Hex(), p.ID)
	assert.Equal(t, u.Name, p.Name)
	assert.Equal(t, u.Email, p.Email)
	assert.Equal(t, u.Phone, p.Phone)
}
