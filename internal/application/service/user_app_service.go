package service

import (
	"context"

	"github.com/mspsec/riskboard/internal/application/dto"
	"github.com/mspsec/riskboard/internal/domain/models"
	"github.com/mspsec/riskboard/internal/domain/repository"
	domainservice "github.com/mspsec/riskboard/internal/domain/service"
	"github.com/mspsec/riskboard/pkg/constants"
	"github.com/mspsec/riskboard/pkg/errors"
	"github.com/mspsec/riskboard/pkg/logger"
	"github.com/mspsec/riskboard/pkg/utils"
)

// UserAppService covers staff user and invite management.
type UserAppService interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, userID string) (*dto.UserResponse, error)
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	UpdateUser(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, userID string) error

	CreateInvite(ctx context.Context, req *dto.CreateInviteRequest) (*dto.InviteResponse, error)
	ListInvites(ctx context.Context) ([]dto.InviteResponse, error)
	RevokeInvite(ctx context.Context, inviteID string) error
	AcceptInvite(ctx context.Context, req *dto.AcceptInviteRequest) (*dto.UserResponse, error)
}

type userAppServiceImpl struct {
	userRepo   repository.UserRepository
	inviteRepo repository.InviteRepository
	audit      domainservice.AuditService
	logger     logger.Logger
}

// NewUserAppService creates the user application service.
func NewUserAppService(
	userRepo repository.UserRepository,
	inviteRepo repository.InviteRepository,
	audit domainservice.AuditService,
	log logger.Logger,
) UserAppService {
	return &userAppServiceImpl{
		userRepo:   userRepo,
		inviteRepo: inviteRepo,
		audit:      audit,
		logger:     log.WithComponent("user_service"),
	}
}

func (s *userAppServiceImpl) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, errors.ErrConflict("a user with this email already exists")
	}

	user := models.NewUser(req.Email, req.Name, constants.UserRole(req.Role))
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error(ctx, "failed to create user", err, logger.String("email", req.Email))
		return nil, err
	}

	s.logger.Info(ctx, "user created",
		logger.String("user_id", user.ID), logger.String("role", req.Role))
	return userToDTO(user), nil
}

func (s *userAppServiceImpl) GetUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return userToDTO(user), nil
}

func (s *userAppServiceImpl) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *userToDTO(u))
	}
	return out, nil
}

func (s *userAppServiceImpl) UpdateUser(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = constants.UserRole(*req.Role)
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return userToDTO(user), nil
}

func (s *userAppServiceImpl) DeleteUser(ctx context.Context, userID string) error {
	if userID == actorFromContext(ctx) {
		return errors.ErrConflict("cannot delete your own account")
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info(ctx, "user deleted", logger.String("user_id", userID))
	return nil
}

func (s *userAppServiceImpl) CreateInvite(ctx context.Context, req *dto.CreateInviteRequest) (*dto.InviteResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, errors.ErrConflict("a user with this email already exists")
	}

	invite := models.NewInvite(req.Email, constants.UserRole(req.Role), actorFromContext(ctx))
	if err := s.inviteRepo.Save(ctx, invite); err != nil {
		s.logger.Error(ctx, "failed to create invite", err, logger.String("email", req.Email))
		return nil, err
	}

	s.logger.Info(ctx, "invite created",
		logger.String("invite_id", invite.ID), logger.String("role", req.Role))
	s.logAudit(ctx, models.AuditInviteCreated, "invite created for "+invite.Email)

	// the token is returned exactly once, at creation
	return inviteToDTO(invite, true), nil
}

func (s *userAppServiceImpl) ListInvites(ctx context.Context) ([]dto.InviteResponse, error) {
	invites, err := s.inviteRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InviteResponse, 0, len(invites))
	for _, i := range invites {
		out = append(out, *inviteToDTO(i, false))
	}
	return out, nil
}

func (s *userAppServiceImpl) RevokeInvite(ctx context.Context, inviteID string) error {
	if err := s.inviteRepo.Delete(ctx, inviteID); err != nil {
		return err
	}
	s.logger.Info(ctx, "invite revoked", logger.String("invite_id", inviteID))
	return nil
}

// AcceptInvite redeems a token and activates the invited user. This is the one
// unauthenticated mutation in the API.
func (s *userAppServiceImpl) AcceptInvite(ctx context.Context, req *dto.AcceptInviteRequest) (*dto.UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	invite, err := s.inviteRepo.FindByToken(ctx, req.Token)
	if err != nil {
		// the token never goes back in the error
		return nil, errors.ErrNotFound("invite", "token").
			WithMessage("invite token is invalid or has been revoked")
	}

	if err := invite.Accept(); err != nil {
		return nil, err
	}

	user := models.NewUser(invite.Email, req.Name, invite.Role)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	if err := s.inviteRepo.Update(ctx, invite); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "invite accepted",
		logger.String("invite_id", invite.ID), logger.String("user_id", user.ID))
	s.logAudit(ctx, models.AuditInviteAccepted, "invite accepted by "+invite.Email)

	return userToDTO(user), nil
}

func (s *userAppServiceImpl) logAudit(ctx context.Context, eventType, message string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.LogEvent(ctx, models.NewAuditEvent("", actorFromContext(ctx), eventType, message)); err != nil {
		s.logger.Warn(ctx, "failed to publish audit event", logger.Error(err),
			logger.String("event_type", eventType))
	}
}

func userToDTO(u *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

func inviteToDTO(i *models.Invite, includeToken bool) *dto.InviteResponse {
	resp := &dto.InviteResponse{
		ID:         i.ID,
		Email:      i.Email,
		Role:       string(i.Role),
		InvitedBy:  i.InvitedBy,
		ExpiresAt:  i.ExpiresAt,
		AcceptedAt: i.AcceptedAt,
	}
	if includeToken {
		resp.Token = i.Token
	}
	return resp
}
