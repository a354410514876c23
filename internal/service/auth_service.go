package service

import (
	"context"
	"fmt"

	"go-campus-events/internal/model"
	"go-campus-events/internal/repository"
	"go-campus-events/pkg/extauth"
	"go-campus-events/pkg/jwt"
)

// Verifier checks campus credentials; *extauth.Client implements it.
type Verifier interface {
	Verify(ctx context.Context, registerNumber, password string) (*extauth.Identity, error)
}

type AuthService interface {
	ExternalLogin(ctx context.Context, req *ExternalLoginRequest) (*LoginResponse, error)
	ValidateToken(token string) (*jwt.Claims, error)
}

type ExternalLoginRequest struct {
	RegisterNumber string `json:"register_number" validate:"required"`
	Password       string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string            `json:"token"`
	User  model.UserSummary `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
	verifier Verifier
	tokens   *jwt.Manager
}

func NewAuthService(userRepo repository.UserRepository, verifier Verifier, tokens *jwt.Manager) AuthService {
	return &authService{
		userRepo: userRepo,
		verifier: verifier,
		tokens:   tokens,
	}
}

// ExternalLogin verifies the credentials upstream, then creates or refreshes
// the local user keyed by the returned email and issues a token for it.
func (s *authService) ExternalLogin(ctx context.Context, req *ExternalLoginRequest) (*LoginResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	id, err := s.verifier.Verify(ctx, req.RegisterNumber, req.Password)
	if err != nil {
		return nil, err
	}

	kind := id.Role
	if kind == "" {
		kind = model.UserKindStudent
	}
	user := &model.User{
		Kid:      req.RegisterNumber,
		Username: req.RegisterNumber,
		Kmail:    id.Email,
		Kind:     kind,
	}
	if err := s.userRepo.UpsertByKmail(ctx, user); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Kind, user.Kmail)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &LoginResponse{Token: token, User: user.ToSummary()}, nil
}

func (s *authService) ValidateToken(token string) (*jwt.Claims, error) {
	return s.tokens.ValidateToken(token)
}
