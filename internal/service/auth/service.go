package auth

import (
	"context"
	"fmt"

	"github.com/jwalitptl/baseline-api/internal/model"
	"github.com/jwalitptl/baseline-api/internal/repository"
	"github.com/jwalitptl/baseline-api/pkg/auth"
	apperrors "github.com/jwalitptl/baseline-api/pkg/errors"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*model.LoginResult, error)
	VerifyToken(ctx context.Context, token string) (*auth.Claims, error)
}

type Service struct {
	userRepo    repository.UserRepository
	jwtSvc      auth.JWTService
	issueTokens bool
}

func NewService(userRepo repository.UserRepository, jwtSvc auth.JWTService, issueTokens bool) *Service {
	return &Service{
		userRepo:    userRepo,
		jwtSvc:      jwtSvc,
		issueTokens: issueTokens,
	}
}

// Login compares the password in plaintext. Unknown users and wrong
// passwords produce the same error.
func (s *Service) Login(ctx context.Context, username, password string) (*model.LoginResult, error) {
	if username == "" || password == "" {
		return nil, apperrors.Validation("Username and password required", nil)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.InvalidCredentials()
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.Password != password {
		return nil, apperrors.InvalidCredentials()
	}

	result := &model.LoginResult{User: user.View()}
	if !s.issueTokens {
		return result, nil
	}

	token, expiresAt, err := s.jwtSvc.GenerateToken(user)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	result.Token = token
	result.ExpiresAt = &expiresAt
	return result, nil
}

func (s *Service) VerifyToken(ctx context.Context, token string) (*auth.Claims, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.jwtSvc.ValidateToken(token)
}
