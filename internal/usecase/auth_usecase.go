package usecase

import (
	"context"
	"strings"
	"time"

	"campustrade/internal/domain/entity"
	"campustrade/internal/domain/repository"
	"campustrade/pkg/errors"
	"campustrade/pkg/logger"
)

// Institutions whose addresses do not end in the standard suffix but are
// still accepted.
var allowedEmailOverrides = []string{
	"calebuniversity.edu.ng",
}

type AuthUseCase struct {
	authClient    FirebaseAuthClient
	userRepo      repository.UserRepository
	campusRepo    repository.CampusRepository
	allowedDomain string
}

func NewAuthUseCase(
	authClient FirebaseAuthClient,
	userRepo repository.UserRepository,
	campusRepo repository.CampusRepository,
	allowedDomain string,
) *AuthUseCase {
	return &AuthUseCase{
		authClient:    authClient,
		userRepo:      userRepo,
		campusRepo:    campusRepo,
		allowedDomain: allowedDomain,
	}
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,campus_email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required,min=2"`
	CampusID string `json:"campus_id" validate:"required"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	User         *entity.User `json:"user"`
}

// EmailAllowed reports whether the address belongs to a recognized
// institution. The check runs before any identity-provider call so a
// rejected address never leaves this process.
func (u *AuthUseCase) EmailAllowed(email string) bool {
	addr := strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndex(addr, "@")
	if at < 0 {
		return false
	}
	domain := addr[at+1:]

	if strings.HasSuffix(domain, u.allowedDomain) {
		return true
	}
	for _, override := range allowedEmailOverrides {
		if domain == override {
			return true
		}
	}
	return false
}

func (u *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	if !u.EmailAllowed(input.Email) {
		return nil, errors.Validation("email", "only university email addresses are allowed")
	}

	if _, err := u.campusRepo.GetByID(ctx, input.CampusID); err != nil {
		return nil, errors.Validation("campus_id", "unknown campus")
	}

	uid, err := u.authClient.CreateUser(ctx, input.Email, input.Password, input.FullName)
	if err != nil {
		return nil, errors.Internal("Failed to create account", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:        uid,
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		FullName:  input.FullName,
		CampusID:  input.CampusID,
		Role:      "student",
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		// Roll back the identity so a retry with the same email can succeed.
		if delErr := u.authClient.DeleteUser(ctx, uid); delErr != nil {
			logger.Error("Failed to clean up auth user %s: %v", uid, delErr)
		}
		return nil, err
	}

	token, refresh, err := u.authClient.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Account created but sign-in failed", err)
	}

	return &AuthResponse{
		Token:        token,
		RefreshToken: refresh,
		User:         user,
	}, nil
}

func (u *AuthUseCase) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	token, refresh, err := u.authClient.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		return nil, errors.Unauthorized("Invalid email or password", err)
	}

	uid, err := u.authClient.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Unauthorized("Invalid email or password", err)
	}

	user, err := u.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token:        token,
		RefreshToken: refresh,
		User:         user,
	}, nil
}
