// Package service coordinates multi-step member mutations performed from
// the admin grid. Creating or editing a member with a role takes two API
// calls; when the second fails the first is rolled back so the grid never
// half-applies a change.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/memberhub/member-console/internal/memberapi"
)

// placeholderPassword is assigned to accounts created from the admin grid.
// The grid form has no password field; the member signs in with this value
// once and changes it from their profile.
const placeholderPassword = "password1234"

// MemberAPI is the slice of the member API client the admin grid needs.
type MemberAPI interface {
	ListMembers(ctx context.Context, token string) ([]memberapi.Member, error)
	GetMember(ctx context.Context, token, id string) (*memberapi.Member, error)
	CreateMember(ctx context.Context, input memberapi.CreateMemberInput) (*memberapi.Member, error)
	UpdateMember(ctx context.Context, token, id string, input memberapi.UpdateMemberInput) (*memberapi.Member, error)
	SetRoles(ctx context.Context, token, id string, roles []string) (*memberapi.Member, error)
	DeleteMember(ctx context.Context, token, id string) error
}

// AdminService runs the admin grid's member mutations against the API.
type AdminService struct {
	api    MemberAPI
	logger zerolog.Logger
}

func NewAdminService(api MemberAPI, logger zerolog.Logger) *AdminService {
	return &AdminService{api: api, logger: logger}
}

// CreateMemberInput is a new grid entry. Role is the console-side
// lower-case form.
type CreateMemberInput struct {
	Name        string
	Email       string
	PhoneNumber string
	Role        string
}

// UpdateMemberInput edits an existing grid entry.
type UpdateMemberInput struct {
	Name        string
	Email       string
	PhoneNumber string
	Role        string
}

func (s *AdminService) List(ctx context.Context, token string) ([]memberapi.Member, error) {
	return s.api.ListMembers(ctx, token)
}

func (s *AdminService) Get(ctx context.Context, token, id string) (*memberapi.Member, error) {
	return s.api.GetMember(ctx, token, id)
}

// Create registers the member with the placeholder password and then
// assigns the requested role. If role assignment fails the freshly created
// account is deleted again; a failed cleanup is logged and reported so an
// operator can finish it by hand.
func (s *AdminService) Create(ctx context.Context, token string, input CreateMemberInput) (*memberapi.Member, error) {
	created, err := s.api.CreateMember(ctx, memberapi.CreateMemberInput{
		Name:        input.Name,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Password:    placeholderPassword,
	})
	if err != nil {
		return nil, err
	}

	member, err := s.api.SetRoles(ctx, token, created.ID, []string{apiRole(input.Role)})
	if err != nil {
		if cleanupErr := s.api.DeleteMember(ctx, token, created.ID); cleanupErr != nil {
			s.logger.Error().Err(cleanupErr).Str("member_id", created.ID).
				Msg("rollback of partially created member failed")
			return nil, fmt.Errorf("assign role: %w (cleanup also failed: %v)", err, cleanupErr)
		}
		return nil, fmt.Errorf("assign role: %w", err)
	}
	return member, nil
}

// Update patches the member's fields and then their role. A failed role
// change triggers a best-effort restore of the previous field values so
// both steps land or neither does.
func (s *AdminService) Update(ctx context.Context, token, id string, input UpdateMemberInput) (*memberapi.Member, error) {
	previous, err := s.api.GetMember(ctx, token, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.api.UpdateMember(ctx, token, id, memberapi.UpdateMemberInput{
		Name:        &input.Name,
		Email:       &input.Email,
		PhoneNumber: &input.PhoneNumber,
	}); err != nil {
		return nil, err
	}

	member, err := s.api.SetRoles(ctx, token, id, []string{apiRole(input.Role)})
	if err != nil {
		_, rollbackErr := s.api.UpdateMember(ctx, token, id, memberapi.UpdateMemberInput{
			Name:        &previous.Name,
			Email:       &previous.Email,
			PhoneNumber: &previous.PhoneNumber,
		})
		if rollbackErr != nil {
			s.logger.Error().Err(rollbackErr).Str("member_id", id).
				Msg("rollback of member fields failed")
		}
		return nil, fmt.Errorf("assign role: %w", err)
	}
	return member, nil
}

func (s *AdminService) Delete(ctx context.Context, token, id string) error {
	return s.api.DeleteMember(ctx, token, id)
}

// apiRole converts the console's lower-case role into the API's form.
func apiRole(role string) string {
	return strings.ToUpper(role)
}

// DisplayRole is the grid's rendering of a member's roles: the first role
// lower-cased, or empty when the member has none.
func DisplayRole(roles []string) string {
	if len(roles) == 0 {
		return ""
	}
	return strings.ToLower(roles[0])
}
