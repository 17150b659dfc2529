package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, email, hashedPassword string) (User, error) {
	args := m.Called(ctx, email, hashedPassword)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hashed, err := HashPassword("correct-horse")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", mock.Anything, "admin@example.com").
			Return(User{ID: 1, Email: "admin@example.com", Password: hashed}, nil)

		svc := NewService(repo)
		token, u, err := svc.Login(context.Background(), "admin@example.com", "correct-horse")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, uint(1), u.ID)

		claims, err := ParseJWT(token)
		require.NoError(t, err)
		assert.Equal(t, uint(1), claims.UserID)
		assert.Equal(t, "admin@example.com", claims.Email)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", mock.Anything, "admin@example.com").
			Return(User{ID: 1, Email: "admin@example.com", Password: hashed}, nil)

		svc := NewService(repo)
		_, _, err := svc.Login(context.Background(), "admin@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", mock.Anything, "nobody@example.com").
			Return(User{}, ErrUserNotFound)

		svc := NewService(repo)
		_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_Register(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", mock.Anything, "new@example.com", mock.AnythingOfType("string")).
			Return(User{ID: 2, Email: "new@example.com"}, nil)

		svc := NewService(repo)
		token, u, err := svc.Register(context.Background(), "new@example.com", "secret123")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, uint(2), u.ID)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", mock.Anything, "dup@example.com", mock.AnythingOfType("string")).
			Return(User{}, errors.New(`pq: duplicate key value violates unique constraint "admin_users_email_key"`))

		svc := NewService(repo)
		_, _, err := svc.Register(context.Background(), "dup@example.com", "secret123")
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("other", hash))
}
