package services

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/shopkart/shopkart-api/common/errors"
	"github.com/shopkart/shopkart-api/models"
	"github.com/shopkart/shopkart-api/repository"
)

// AuthResult is what a successful login or registration hands back to the
// transport layer: the bearer token for the client and the refresh token
// destined for the http-only cookie.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	RefreshTTL   time.Duration
	Roles        []string
}

type AuthService struct {
	userRepo     repository.UserRepository
	tokenService *TokenService
}

func NewAuthService(userRepo repository.UserRepository, tokenService *TokenService) *AuthService {
	return &AuthService{userRepo: userRepo, tokenService: tokenService}
}

// Register creates an account with the default Customer role and logs it
// straight in. Duplicate usernames are a conflict.
func (s *AuthService) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	if username == "" || password == "" {
		return nil, apperrors.Validation("Username and password are required")
	}

	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.Internal("Failed to look up user", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("User already exists", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hashed),
		Roles:    []string{models.RoleCustomer},
		Active:   true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, apperrors.Conflict("User already exists", err)
		}
		return nil, apperrors.Internal("Failed to create user", err)
	}

	return s.issueTokens(user, 7*24*time.Hour)
}

// Login authenticates a username/password pair. Unknown user, disabled
// account, and wrong password all yield the same unauthorized response.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	if username == "" || password == "" {
		return nil, apperrors.Validation("Username and password are required")
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.Internal("Failed to look up user", err)
	}
	if user == nil || !user.Active {
		return nil, apperrors.Unauthorized("Not authorised")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("Not authorised")
	}

	return s.issueTokens(user, 24*time.Hour)
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, []string, error) {
	username, err := s.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", nil, apperrors.Forbidden("Forbidden")
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, apperrors.Internal("Failed to look up user", err)
	}
	if user == nil || !user.Active {
		return "", nil, apperrors.Unauthorized("Unauthorized")
	}

	accessToken, err := s.tokenService.GenerateAccessToken(user.Username, user.Roles)
	if err != nil {
		return "", nil, apperrors.Internal("Failed to generate token", err)
	}
	return accessToken, user.Roles, nil
}

func (s *AuthService) issueTokens(user *models.User, refreshTTL time.Duration) (*AuthResult, error) {
	accessToken, err := s.tokenService.GenerateAccessToken(user.Username, user.Roles)
	if err != nil {
		return nil, apperrors.Internal("Failed to generate token", err)
	}
	refreshToken, err := s.tokenService.GenerateRefreshToken(user.Username, refreshTTL)
	if err != nil {
		return nil, apperrors.Internal("Failed to generate token", err)
	}
	return &AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		RefreshTTL:   refreshTTL,
		Roles:        user.Roles,
	}, nil
}
