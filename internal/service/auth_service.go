package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/project-board/internal/auth"
	"github.com/spec-kit/project-board/internal/config"
	"github.com/spec-kit/project-board/internal/domain"
	"github.com/spec-kit/project-board/internal/repository"
	apperrors "github.com/spec-kit/project-board/pkg/util"
)

// AuthService coordinates invite activation and login.
type AuthService struct {
	members    repository.MemberRepository
	team       *TeamService
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, members repository.MemberRepository, team *TeamService) *AuthService {
	return &AuthService{
		members:    members,
		team:       team,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Activate redeems an invite token, sets the member's password, and marks
// the account active.
func (s *AuthService) Activate(ctx context.Context, inviteToken, password string) (*domain.Member, string, time.Time, error) {
	if password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("password required", nil)
	}

	memberID, err := s.team.RedeemInvite(ctx, inviteToken)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	member.PasswordHash = hash
	member.Status = domain.MemberStatusActive

	if err := s.members.Update(ctx, member); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(member.ID, member.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return member, token, exp, nil
}

// Login authenticates a member by alias and password.
func (s *AuthService) Login(ctx context.Context, alias, password string) (*domain.Member, string, time.Time, error) {
	member, err := s.members.GetByAlias(ctx, alias)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if member.Status != domain.MemberStatusActive {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("account not activated")
	}
	if err := auth.ComparePassword(member.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(member.ID, member.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return member, token, exp, nil
}
