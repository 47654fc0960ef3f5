package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
)

var ErrInvalidToken = errors.New("invalid or expired token")

const accountLookupTimeout = 2 * time.Second

// Identity is what a valid token resolves to.
type Identity struct {
	AccountID string
	PlayerID  string
}

// TokenService issues HS256 tokens whose subject is the account id.
type TokenService struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
	accounts  domain.AccountRepository
	parser    *jwt.Parser
}

func NewTokenService(secretKey string, issuer string, ttl time.Duration, accounts domain.AccountRepository) *TokenService {
	return &TokenService{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		ttl:       ttl,
		accounts:  accounts,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
		),
	}
}

func (s *TokenService) GenerateToken(accountID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   accountID,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("token service: sign: %w", err)
	}
	return signed, nil
}

// ValidateToken checks signature, issuer and expiry, then resolves the
// account so deleted accounts lose access immediately.
func (s *TokenService) ValidateToken(tokenString string) (Identity, error) {
	var claims jwt.RegisteredClaims
	_, err := s.parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return s.secretKey, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return Identity{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	ctx, cancel := context.WithTimeout(context.Background(), accountLookupTimeout)
	defer cancel()

	account, err := s.accounts.GetByID(ctx, claims.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: account lookup: %w", ErrInvalidToken, err)
	}
	return Identity{AccountID: account.ID, PlayerID: account.PlayerID}, nil
}

// TTL is how long issued tokens stay valid.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}
