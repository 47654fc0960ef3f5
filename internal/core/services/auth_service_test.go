package services

import (
	"context"
	"errors"
	"testing"

	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	t.Run("Success: Should register a valid account", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		service := NewAuthService(mockRepo)
		ctx := context.Background()

		input := RegisterInput{
			Email:    "Seeker@HealthQuest.app",
			Password: "StrongPassword123!",
		}

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Account")).Return(nil)

		account, err := service.Register(ctx, input)

		assert.NoError(t, err)
		assert.NotNil(t, account)
		assert.Equal(t, "seeker@healthquest.app", account.Email)
		assert.NotEmpty(t, account.ID)
		assert.NotEmpty(t, account.PlayerID)
		assert.NotEqual(t, account.ID, account.PlayerID)
		assert.NotEmpty(t, account.PasswordHash)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Fail: Should return error for invalid email", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		service := NewAuthService(mockRepo)

		account, err := service.Register(context.Background(), RegisterInput{Email: "not-an-email", Password: "pass"})

		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
		assert.Nil(t, account)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should return error for short password", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		service := NewAuthService(mockRepo)

		account, err := service.Register(context.Background(), RegisterInput{Email: "valid@email.com", Password: "short"})

		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
		assert.Nil(t, account)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should propagate repository error (Duplicate Email)", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		service := NewAuthService(mockRepo)
		ctx := context.Background()

		mockRepo.On("Create", ctx, mock.Anything).Return(domain.ErrEmailAlreadyExists)

		account, err := service.Register(ctx, RegisterInput{Email: "duplicate@email.com", Password: "StrongPassword123!"})

		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
		assert.Nil(t, account)
		mockRepo.AssertExpectations(t)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	stored, _ := domain.NewAccount("acc-1", "player@email.com", "player-1", fixedNow)
	_ = stored.SetPassword("StrongPassword123!")

	t.Run("Success: Correct credentials", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		service := NewAuthService(mockRepo)
		mockRepo.On("GetByEmail", mock.Anything, "player@email.com").Return(stored, nil)

		account, err := service.Login(context.Background(), " Player@Email.com ", "StrongPassword123!")

		assert.NoError(t, err)
		assert.Equal(t, "player-1", account.PlayerID)
	})

	t.Run("Fail: Wrong password", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		service := NewAuthService(mockRepo)
		mockRepo.On("GetByEmail", mock.Anything, "player@email.com").Return(stored, nil)

		_, err := service.Login(context.Background(), "player@email.com", "WrongPassword!")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Fail: Unknown email", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		service := NewAuthService(mockRepo)
		mockRepo.On("GetByEmail", mock.Anything, "ghost@email.com").Return(nil, domain.ErrAccountNotFound)

		_, err := service.Login(context.Background(), "ghost@email.com", "whatever123")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Fail: Repository error is not masked", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		service := NewAuthService(mockRepo)
		dbErr := errors.New("connection refused")
		mockRepo.On("GetByEmail", mock.Anything, "player@email.com").Return(nil, dbErr)

		_, err := service.Login(context.Background(), "player@email.com", "StrongPassword123!")

		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
