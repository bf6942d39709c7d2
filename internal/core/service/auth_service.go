package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/memberhub/member-console/internal/core/domain"
	"github.com/memberhub/member-console/internal/core/ports"
)

// AuthService verifies credentials and mints access tokens.
type AuthService struct {
	repo      ports.MemberRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.MemberRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Login authenticates by email and returns a signed access token alongside
// the member record.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Member, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	member, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			// Do not reveal whether the account exists.
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(member)
	if err != nil {
		return "", nil, err
	}

	return token, member, nil
}

// generateToken mints an HS256 JWT. The subject is the member's stable id so
// clients never have to key requests by the mutable email address. Roles are
// ordered; the first entry is the effective role.
func (s *AuthService) generateToken(member *domain.Member) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   member.ID,
		"email": member.Email,
		"roles": member.Roles,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
