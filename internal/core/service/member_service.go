package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/memberhub/member-console/internal/core/domain"
	"github.com/memberhub/member-console/internal/core/ports"
)

// MemberService implements member CRUD and role assignment.
type MemberService struct {
	repo   ports.MemberRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewMemberService(repo ports.MemberRepository, audit ports.AuditRecorder, logger zerolog.Logger) *MemberService {
	return &MemberService{repo: repo, audit: audit, logger: logger}
}

// record emits an audit event when a recorder is configured.
func (s *MemberService) record(memberID, action string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ports.AuditEvent{
		MemberID:   memberID,
		Action:     action,
		OccurredAt: time.Now().UTC(),
	})
}

// Register creates a member with the default USER role.
func (s *MemberService) Register(ctx context.Context, input ports.CreateMemberInput) (*domain.Member, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	member := &domain.Member{
		Name:         input.Name,
		Email:        input.Email,
		PhoneNumber:  input.PhoneNumber,
		Roles:        []string{domain.RoleUser},
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, member)
	if err != nil {
		s.logger.Error().Err(err).Str("email", input.Email).Msg("failed to create member")
		return nil, err
	}

	s.logger.Info().Str("member_id", created.ID).Str("email", created.Email).Msg("member created")
	s.record(created.ID, ports.AuditActionRegistered)
	return created, nil
}

func (s *MemberService) List(ctx context.Context) ([]domain.Member, error) {
	return s.repo.List(ctx)
}

func (s *MemberService) Get(ctx context.Context, id string) (*domain.Member, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial profile update. A provided password is re-hashed;
// everything else is stored as-is.
func (s *MemberService) Update(ctx context.Context, id string, input ports.UpdateMemberInput) (*domain.Member, error) {
	patch := ports.MemberPatch{
		Name:        input.Name,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
	}

	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		patch.PasswordHash = &hashed
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		s.logger.Error().Err(err).Str("member_id", id).Msg("failed to update member")
		return nil, err
	}

	s.logger.Info().Str("member_id", id).Msg("member updated")
	s.record(id, ports.AuditActionUpdated)
	return updated, nil
}

// SetRoles replaces the member's role list. The order is preserved; the
// first entry is the effective role.
func (s *MemberService) SetRoles(ctx context.Context, id string, roles []string) (*domain.Member, error) {
	if len(roles) == 0 {
		return nil, domain.ErrInvalidRole
	}
	for _, role := range roles {
		if !domain.KnownRole(role) {
			return nil, domain.ErrInvalidRole
		}
	}

	updated, err := s.repo.SetRoles(ctx, id, roles)
	if err != nil {
		s.logger.Error().Err(err).Str("member_id", id).Msg("failed to set roles")
		return nil, err
	}

	s.logger.Info().Str("member_id", id).Strs("roles", roles).Msg("roles updated")
	s.record(id, ports.AuditActionRolesChanged)
	return updated, nil
}

func (s *MemberService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("member_id", id).Msg("failed to delete member")
		return err
	}

	s.logger.Info().Str("member_id", id).Msg("member deleted")
	s.record(id, ports.AuditActionDeleted)
	return nil
}
