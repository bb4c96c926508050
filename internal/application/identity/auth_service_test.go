package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/souq/backend/internal/domain/identity"
	"github.com/souq/backend/internal/domain/shared"
	"github.com/souq/backend/internal/infrastructure/auth"
	"github.com/souq/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newTestAuthService(repo *MockUserRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-for-jwt-signing-0123456789",
		TokenExpiration: time.Hour,
		Issuer:          "souq-backend-test",
	})
	return NewAuthService(repo, jwtService, zap.NewNop())
}

func TestAuthService_Register(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)

		repo.On("ExistsByUsername", mock.Anything, "aminetou").Return(false, nil)
		repo.On("ExistsByEmail", mock.Anything, "aminetou@example.com").Return(false, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

		resp, err := svc.Register(context.Background(), RegisterRequest{
			Username: "aminetou",
			Email:    "aminetou@example.com",
			Password: "password123",
			IsSeller: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "aminetou", resp.Username)
		assert.True(t, resp.IsSeller)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate username", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)

		repo.On("ExistsByUsername", mock.Anything, "aminetou").Return(true, nil)

		_, err := svc.Register(context.Background(), RegisterRequest{
			Username: "aminetou",
			Email:    "aminetou@example.com",
			Password: "password123",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)

		repo.On("ExistsByUsername", mock.Anything, "aminetou").Return(false, nil)
		repo.On("ExistsByEmail", mock.Anything, "aminetou@example.com").Return(true, nil)

		_, err := svc.Register(context.Background(), RegisterRequest{
			Username: "aminetou",
			Email:    "aminetou@example.com",
			Password: "password123",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

func TestAuthService_Login(t *testing.T) {
	newUser := func(t *testing.T) *identity.User {
		user, err := identity.NewUser("aminetou", "aminetou@example.com", "password123", false)
		require.NoError(t, err)
		return user
	}

	t.Run("successful login returns token", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)
		user := newUser(t)

		repo.On("FindByUsername", mock.Anything, "aminetou").Return(user, nil)
		repo.On("Save", mock.Anything, user).Return(nil)

		resp, err := svc.Login(context.Background(), LoginRequest{
			Username: "aminetou",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "aminetou", resp.User.Username)
		assert.NotNil(t, user.LastLoginAt)
	})

	t.Run("unknown username", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)

		repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, shared.ErrNotFound)

		_, err := svc.Login(context.Background(), LoginRequest{
			Username: "ghost",
			Password: "password123",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)
		user := newUser(t)

		repo.On("FindByUsername", mock.Anything, "aminetou").Return(user, nil)

		_, err := svc.Login(context.Background(), LoginRequest{
			Username: "aminetou",
			Password: "wrong-password",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("login still succeeds when save fails", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)
		user := newUser(t)

		repo.On("FindByUsername", mock.Anything, "aminetou").Return(user, nil)
		repo.On("Save", mock.Anything, user).Return(errors.New("db down"))

		resp, err := svc.Login(context.Background(), LoginRequest{
			Username: "aminetou",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
	})
}

func TestAuthService_GetProfile(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestAuthService(repo)

	user, err := identity.NewUser("aminetou", "aminetou@example.com", "password123", true)
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	resp, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.ID)
	assert.True(t, resp.IsSeller)
}
