package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdugdh24/skillswap-backend/internal/domain"
	"github.com/gdugdh24/skillswap-backend/internal/pkg/jwt"
	"github.com/gdugdh24/skillswap-backend/internal/repository"
	"github.com/gdugdh24/skillswap-backend/internal/usecase/user"
)

type AuthUseCase struct {
	users  *user.UserUseCase
	tokens repository.RefreshTokenStore
	jwt    jwt.Service
}

func NewAuthUseCase(users *user.UserUseCase, tokens repository.RefreshTokenStore, jwtSvc jwt.Service) *AuthUseCase {
	return &AuthUseCase{
		users:  users,
		tokens: tokens,
		jwt:    jwtSvc,
	}
}

// RegisterRequest represents registration payload
type RegisterRequest = user.CreateUserRequest

// LoginRequest represents token obtain payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token for rotation or logout
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// TokenPair is the credential pair handed to clients
type TokenPair struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

// RegisterResult is returned after a successful registration
type RegisterResult struct {
	User *domain.User
	TokenPair
}

// Register creates the account and issues its first token pair.
func (uc *AuthUseCase) Register(ctx context.Context, req *RegisterRequest) (*RegisterResult, error) {
	u, err := uc.users.CreateUser(ctx, req)
	if err != nil {
		return nil, err
	}

	pair, err := uc.issue(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	return &RegisterResult{User: u, TokenPair: *pair}, nil
}

// Login exchanges credentials for a token pair.
func (uc *AuthUseCase) Login(ctx context.Context, req *LoginRequest) (*TokenPair, error) {
	u, err := uc.users.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	return uc.issue(ctx, u.ID)
}

// Refresh rotates a refresh token: the presented one is revoked and a new
// pair is issued.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := uc.jwt.ValidateRefresh(refreshToken)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	ownerID, err := uc.tokens.Consume(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, domain.ErrTokenRevoked) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to consume refresh token: %w", err)
	}
	if ownerID != claims.UserID {
		return nil, domain.ErrInvalidToken
	}

	return uc.issue(ctx, claims.UserID)
}

// Logout revokes a refresh token owned by userID. Unknown tokens are not an
// error.
func (uc *AuthUseCase) Logout(ctx context.Context, userID int, refreshToken string) error {
	claims, err := uc.jwt.ValidateRefresh(refreshToken)
	if err != nil || claims.UserID != userID {
		return domain.ErrInvalidToken
	}
	return uc.tokens.Delete(ctx, claims.ID)
}

// VerifyAccessToken returns the user id carried by a valid access token.
func (uc *AuthUseCase) VerifyAccessToken(token string) (int, error) {
	claims, err := uc.jwt.ValidateAccess(token)
	if err != nil {
		return 0, domain.ErrInvalidToken
	}
	return claims.UserID, nil
}

func (uc *AuthUseCase) issue(ctx context.Context, userID int) (*TokenPair, error) {
	pair, err := uc.jwt.IssuePair(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	if err := uc.tokens.Save(ctx, pair.RefreshID, userID, pair.RefreshExpiresIn); err != nil {
		return nil, err
	}
	return &TokenPair{Refresh: pair.Refresh, Access: pair.Access}, nil
}
