package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
	"github.com/google/uuid"
)

type AuthService struct {
	repo domain.AccountRepository
	now  func() time.Time
}

func NewAuthService(repo domain.AccountRepository) *AuthService {
	return &AuthService{
		repo: repo,
		now:  time.Now,
	}
}

type RegisterInput struct {
	Email    string
	Password string
}

// Register creates an account together with the id of its game profile. The
// profile itself is created lazily on first access.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	account, err := domain.NewAccount(uuid.NewString(), input.Email, uuid.NewString(), s.now())
	if err != nil {
		return nil, err
	}

	if err := account.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("auth service: failed to create account: %w", err)
	}

	return account, nil
}

// Login returns the account matching the credentials. Unknown emails and
// wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Account, error) {
	account, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, domain.ErrAccountNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("auth service: failed to load account: %w", err)
	}

	if err := account.CheckPassword(password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return account, nil
}
