package ports

import (
	"context"

	"github.com/memberhub/member-console/internal/core/domain"
)

// CreateMemberInput carries the fields accepted on registration.
type CreateMemberInput struct {
	Name        string
	Email       string
	PhoneNumber string
	Password    string
}

// UpdateMemberInput is a partial profile update: nil fields are left
// untouched. A non-nil Password is re-hashed before persisting.
type UpdateMemberInput struct {
	Name        *string
	Email       *string
	PhoneNumber *string
	Password    *string
}

type MemberService interface {
	Register(ctx context.Context, input CreateMemberInput) (*domain.Member, error)
	List(ctx context.Context) ([]domain.Member, error)
	Get(ctx context.Context, id string) (*domain.Member, error)
	Update(ctx context.Context, id string, input UpdateMemberInput) (*domain.Member, error)
	SetRoles(ctx context.Context, id string, roles []string) (*domain.Member, error)
	Delete(ctx context.Context, id string) error
}
