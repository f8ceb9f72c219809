package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rubenhtun/luxora-store/internal/user"
)

// MockAPI is a mock implementation of the API interface
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Login(ctx context.Context, email, password string) (*user.Profile, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Profile), args.Error(1)
}

func (m *MockAPI) Signup(ctx context.Context, name, email, password string) (*user.Profile, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Profile), args.Error(1)
}

func (m *MockAPI) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAPI) Refresh(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAPI) CurrentUser(ctx context.Context) (*user.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Profile), args.Error(1)
}

func (m *MockAPI) UpdatePhone(ctx context.Context, phone string) (*user.Profile, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Profile), args.Error(1)
}

func profileFixture() *user.Profile {
	return &user.Profile{
		ID:    "64f0c7e2a1b2c3d4e5f60718",
		Name:  "Test User",
		Email: "test@example.com",
	}
}

func TestManager_Start(t *testing.T) {
	ctx := context.Background()

	t.Run("Silent refresh then user fetch succeeds", func(t *testing.T) {
		api := new(MockAPI)
		api.On("Refresh", ctx).Return(nil)
		api.On("CurrentUser", ctx).Return(profileFixture(), nil)

		m := NewManager(api)
		defer m.Close()

		assert.Equal(t, StateChecking, m.State())

		m.Start(ctx)

		assert.Equal(t, StateAuthenticated, m.State())
		assert.Equal(t, "test@example.com", m.User().Email)
		api.AssertExpectations(t)
	})

	t.Run("Refresh failure leaves session anonymous", func(t *testing.T) {
		api := new(MockAPI)
		api.On("Refresh", ctx).Return(errors.New("401"))

		m := NewManager(api)
		defer m.Close()

		m.Start(ctx)

		assert.Equal(t, StateAnonymous, m.State())
		assert.Nil(t, m.User())
		api.AssertNotCalled(t, "CurrentUser")
	})

	t.Run("User fetch failure leaves session anonymous", func(t *testing.T) {
		api := new(MockAPI)
		api.On("Refresh", ctx).Return(nil)
		api.On("CurrentUser", ctx).Return(nil, errors.New("401"))

		m := NewManager(api)
		defer m.Close()

		m.Start(ctx)

		assert.Equal(t, StateAnonymous, m.State())
	})

	t.Run("Closed manager suppresses late transition", func(t *testing.T) {
		api := new(MockAPI)
		refreshStarted := make(chan struct{})
		release := make(chan struct{})
		api.On("Refresh", ctx).Run(func(mock.Arguments) {
			close(refreshStarted)
			<-release
		}).Return(nil)
		api.On("CurrentUser", ctx).Return(profileFixture(), nil)

		m := NewManager(api)

		done := make(chan struct{})
		go func() {
			m.Start(ctx)
			close(done)
		}()

		<-refreshStarted
		m.Close()
		close(release)
		<-done

		// The late response must not resurrect the disposed session.
		assert.NotEqual(t, StateAuthenticated, m.State())
	})
}

func TestManager_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success populates user", func(t *testing.T) {
		api := new(MockAPI)
		api.On("Login", ctx, "test@example.com", "password123").Return(profileFixture(), nil)

		m := NewManager(api)
		defer m.Close()

		err := m.Login(ctx, "test@example.com", "password123")

		assert.NoError(t, err)
		assert.Equal(t, StateAuthenticated, m.State())
		assert.Equal(t, "Test User", m.User().Name)
	})

	t.Run("Failure keeps session untouched and carries server message", func(t *testing.T) {
		api := new(MockAPI)
		api.On("Login", ctx, "test@example.com", "badpass").Return(nil, errors.New("invalid email or password"))

		m := NewManager(api)
		defer m.Close()
		m.transition(StateAnonymous, nil, "")

		err := m.Login(ctx, "test@example.com", "badpass")

		assert.EqualError(t, err, "invalid email or password")
		assert.Equal(t, StateAnonymous, m.State())
		assert.Nil(t, m.User())
	})
}

func TestManager_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		api := new(MockAPI)
		api.On("Signup", ctx, "Test User", "test@example.com", "password123").Return(profileFixture(), nil)

		m := NewManager(api)
		defer m.Close()

		assert.NoError(t, m.Signup(ctx, "Test User", "test@example.com", "password123"))
		assert.Equal(t, StateAuthenticated, m.State())
	})

	t.Run("Duplicate email message surfaces", func(t *testing.T) {
		api := new(MockAPI)
		api.On("Signup", ctx, "Test User", "test@example.com", "password123").Return(nil, errors.New("email already registered"))

		m := NewManager(api)
		defer m.Close()
		m.transition(StateAnonymous, nil, "")

		err := m.Signup(ctx, "Test User", "test@example.com", "password123")

		assert.EqualError(t, err, "email already registered")
		assert.Equal(t, StateAnonymous, m.State())
	})
}

func TestManager_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("Clears session", func(t *testing.T) {
		api := new(MockAPI)
		api.On("Login", ctx, "test@example.com", "password123").Return(profileFixture(), nil)
		api.On("Logout", ctx).Return(nil)

		m := NewManager(api)
		defer m.Close()
		assert.NoError(t, m.Login(ctx, "test@example.com", "password123"))

		m.Logout(ctx)

		assert.Equal(t, StateAnonymous, m.State())
		assert.Nil(t, m.User())
	})

	t.Run("Clears session even when the network call fails", func(t *testing.T) {
		api := new(MockAPI)
		api.On("Login", ctx, "test@example.com", "password123").Return(profileFixture(), nil)
		api.On("Logout", ctx).Return(errors.New("network down"))

		m := NewManager(api)
		defer m.Close()
		assert.NoError(t, m.Login(ctx, "test@example.com", "password123"))

		m.Logout(ctx)

		assert.Equal(t, StateAnonymous, m.State())
		assert.Nil(t, m.User())
	})
}

func TestManager_BackgroundRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("Periodic refresh keeps running while it succeeds", func(t *testing.T) {
		api := new(MockAPI)
		api.On("Refresh", mock.Anything).Return(nil)
		api.On("CurrentUser", ctx).Return(profileFixture(), nil)

		m := NewManager(api, WithRefreshInterval(10*time.Millisecond))
		defer m.Close()

		m.Start(ctx)

		assert.Eventually(t, func() bool {
			return m.RefreshCount() >= 2
		}, time.Second, 5*time.Millisecond)
		assert.Equal(t, StateAuthenticated, m.State())
	})

	t.Run("Failed refresh drops to anonymous without redirect", func(t *testing.T) {
		api := new(MockAPI)
		api.On("Refresh", ctx).Return(nil).Once()
		api.On("CurrentUser", ctx).Return(profileFixture(), nil)
		api.On("Refresh", mock.Anything).Return(errors.New("401"))

		m := NewManager(api, WithRefreshInterval(10*time.Millisecond))
		defer m.Close()

		m.Start(ctx)
		assert.Equal(t, StateAuthenticated, m.State())

		assert.Eventually(t, func() bool {
			return m.State() == StateAnonymous
		}, time.Second, 5*time.Millisecond)
		assert.Nil(t, m.User())
	})
}

func TestManager_UpdatePhone(t *testing.T) {
	ctx := context.Background()

	t.Run("Requires authentication", func(t *testing.T) {
		api := new(MockAPI)
		m := NewManager(api)
		defer m.Close()
		m.transition(StateAnonymous, nil, "")

		err := m.UpdatePhone(ctx, "+1 555-0100")

		assert.ErrorIs(t, err, ErrNotAuthenticated)
		api.AssertNotCalled(t, "UpdatePhone")
	})

	t.Run("Refreshes cached profile", func(t *testing.T) {
		api := new(MockAPI)
		api.On("Login", ctx, "test@example.com", "password123").Return(profileFixture(), nil)

		updated := profileFixture()
		updated.Phone = "+1 555-0100"
		api.On("UpdatePhone", ctx, "+1 555-0100").Return(updated, nil)

		m := NewManager(api)
		defer m.Close()
		assert.NoError(t, m.Login(ctx, "test@example.com", "password123"))

		assert.NoError(t, m.UpdatePhone(ctx, "+1 555-0100"))
		assert.Equal(t, "+1 555-0100", m.User().Phone)
	})
}
