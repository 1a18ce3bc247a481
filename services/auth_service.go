package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"storefront/models"
	"storefront/repositories"
)

type CredentialHasher interface {
	Hash(password string) (string, error)
	Verify(encodedHash, password string) (bool, error)
}

type TokenGenerator interface {
	Generate(userID int, email, role string) (string, error)
}

type AuthService struct {
	users  repositories.UserStore
	hasher CredentialHasher
	tokens TokenGenerator
}

func NewAuthService(users repositories.UserStore, hasher CredentialHasher, tokens TokenGenerator) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if utf8.RuneCountInString(req.Password) < models.MinPasswordLength {
		return nil, models.NewValidationError("Password must be at least %d characters", models.MinPasswordLength)
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, models.NewStorageError("hash password", err)
	}

	user := &models.User{
		Email:    normalizeEmail(req.Email),
		Password: hashedPassword,
		Role:     models.RoleCustomer,
	}

	err = s.users.Create(ctx, user)
	if errors.Is(err, models.ErrEmailTaken) {
		return nil, models.ErrEmailTaken
	}
	if err != nil {
		return nil, models.NewStorageError("create user", err)
	}
	return user, nil
}

// Login answers unknown emails and wrong passwords with the same error.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, models.NewStorageError("find user", err)
	}

	valid, err := s.hasher.Verify(user.Password, req.Password)
	if err != nil || !valid {
		return nil, models.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, models.NewStorageError("sign token", err)
	}

	return &models.LoginResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *AuthService) GetProfile(ctx context.Context, identity models.Identity) (*models.User, error) {
	if identity.IsZero() {
		return nil, models.ErrSignInRequired
	}
	user, err := s.users.FindByID(ctx, identity.UserID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, models.NewStorageError("find user", err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
