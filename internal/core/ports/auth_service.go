package ports

import (
	"context"

	"github.com/memberhub/member-console/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.Member, error)
}
