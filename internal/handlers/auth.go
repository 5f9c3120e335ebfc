package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlinks/internal/auth"
	"go.uber.org/zap"
)

// AuthHandler handles registration, login and profile lookups.
type AuthHandler struct {
	accounts *auth.Service
	logger   *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(accounts *auth.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, logger: logger}
}

func toUserBody(user *auth.User) UserBody {
	return UserBody{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func (h *AuthHandler) Register(ctx context.Context, req *RegisterRequest) (*UserResponse, error) {
	user, err := h.accounts.Register(ctx, req.Body.Name, req.Body.Email, req.Body.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return nil, huma.Error409Conflict("email already registered")
		}

		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, huma.Error400BadRequest("password must be at most 72 bytes")
		}

		h.logger.Error("register failed", zap.Error(err))

		return nil, huma.Error500InternalServerError("internal error")
	}

	return &UserResponse{Body: toUserBody(user)}, nil
}

func (h *AuthHandler) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	token, err := h.accounts.Login(ctx, req.Body.Email, req.Body.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, huma.Error401Unauthorized("invalid credentials")
		}

		h.logger.Error("login failed", zap.Error(err))

		return nil, huma.Error500InternalServerError("internal error")
	}

	resp := &LoginResponse{}
	resp.Body.AccessToken = token
	resp.Body.TokenType = "Bearer"

	return resp, nil
}

func (h *AuthHandler) Me(ctx context.Context, _ *struct{}) (*UserResponse, error) {
	p, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	user, err := h.accounts.Profile(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, huma.Error401Unauthorized("account no longer exists")
		}

		h.logger.Error("profile lookup failed", zap.Error(err))

		return nil, huma.Error500InternalServerError("internal error")
	}

	return &UserResponse{Body: toUserBody(user)}, nil
}
