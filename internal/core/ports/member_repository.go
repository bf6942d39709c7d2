package ports

import (
	"context"

	"github.com/memberhub/member-console/internal/core/domain"
)

// MemberPatch is a partial update: nil fields are left untouched.
type MemberPatch struct {
	Name         *string
	Email        *string
	PhoneNumber  *string
	PasswordHash *string
}

// MemberRepository defines the persistence interface for members.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) (*domain.Member, error)
	FindByID(ctx context.Context, id string) (*domain.Member, error)
	FindByEmail(ctx context.Context, email string) (*domain.Member, error)
	List(ctx context.Context) ([]domain.Member, error)
	Update(ctx context.Context, id string, patch MemberPatch) (*domain.Member, error)
	SetRoles(ctx context.Context, id string, roles []string) (*domain.Member, error)
	Delete(ctx context.Context, id string) error
}
