// Package businessflow contains the core business logic and use cases for the game backend
package businessflow

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/Barkerprooks/void-voyager-backend/app/dto"
	"github.com/Barkerprooks/void-voyager-backend/models"
	"github.com/Barkerprooks/void-voyager-backend/repository"
	"github.com/Barkerprooks/void-voyager-backend/utils"
	"gorm.io/gorm"
)

// AuthFlow handles account creation and session lifecycle
type AuthFlow interface {
	Signup(ctx context.Context, req *dto.SignupRequest, metadata *ClientMetadata) (*dto.SignupResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
	Logout(ctx context.Context, token string) (*dto.LogoutResponse, error)
	Account(ctx context.Context, accountID uint) (*dto.AccountDTO, error)
}

// AuthFlowImpl implements the authentication business flow
type AuthFlowImpl struct {
	accountRepo     repository.AccountRepository
	sessionRepo     repository.SessionRepository
	startingBalance int64
	db              *gorm.DB
}

// NewAuthFlow creates a new authentication flow instance
func NewAuthFlow(
	accountRepo repository.AccountRepository,
	sessionRepo repository.SessionRepository,
	startingBalance int64,
	db *gorm.DB,
) AuthFlow {
	return &AuthFlowImpl{
		accountRepo:     accountRepo,
		sessionRepo:     sessionRepo,
		startingBalance: startingBalance,
		db:              db,
	}
}

// Signup creates a new account with the configured starting balance.
// The unique index on username is the source of truth for duplicates;
// there is no read-then-write race window.
func (s *AuthFlowImpl) Signup(ctx context.Context, req *dto.SignupRequest, metadata *ClientMetadata) (*dto.SignupResponse, error) {
	if err := s.validateSignupRequest(req); err != nil {
		return nil, NewBusinessError("SIGNUP_INVALID_INPUT", "Invalid signup input", err)
	}

	account := &models.Account{
		Username:     req.Username,
		PasswordHash: utils.HashPassword(req.Password),
		IsAdmin:      utils.ToPtr(false),
		Balance:      s.startingBalance,
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, NewBusinessError("SIGNUP_DUPLICATE_USERNAME", "Username already exists", ErrUsernameAlreadyExists)
		}
		return nil, NewBusinessError("SIGNUP_FAILED", "Signup failed", err)
	}

	// Signing up implies logging in
	session, err := s.sessionRepo.Bind(ctx, account.ID)
	if err != nil {
		return nil, NewBusinessError("SIGNUP_SESSION_FAILED", "Failed to create session", err)
	}

	log.Printf("account created: id=%d username=%s correlation=%s ip=%s", account.ID, account.Username, session.CorrelationID, metadata.IPAddress)

	return &dto.SignupResponse{
		Account:      ToAccountDTO(*account),
		SessionToken: session.Token,
	}, nil
}

// Login verifies credentials and binds a fresh session token. Unknown
// usernames and wrong passwords produce the same error so the response
// does not leak which accounts exist.
func (s *AuthFlowImpl) Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	account, err := s.accountRepo.ByUsername(ctx, req.Username)
	if err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", err)
	}
	if account == nil {
		return nil, NewBusinessError("LOGIN_INVALID_CREDENTIALS", "Invalid credentials", ErrInvalidCredentials)
	}

	if !utils.VerifyPassword(req.Password, account.PasswordHash) {
		return nil, NewBusinessError("LOGIN_INVALID_CREDENTIALS", "Invalid credentials", ErrInvalidCredentials)
	}

	session, err := s.sessionRepo.Bind(ctx, account.ID)
	if err != nil {
		return nil, NewBusinessError("LOGIN_SESSION_FAILED", "Failed to create session", err)
	}

	log.Printf("login: account=%d correlation=%s ip=%s", account.ID, session.CorrelationID, metadata.IPAddress)

	return &dto.LoginResponse{
		Account:      ToAccountDTO(*account),
		SessionToken: session.Token,
	}, nil
}

// Logout drops the session bound to token. Logging out with an unknown
// or already-dropped token still succeeds; the removed flag tells the
// caller whether a session was actually dropped.
func (s *AuthFlowImpl) Logout(ctx context.Context, token string) (*dto.LogoutResponse, error) {
	removed := false
	if token != "" {
		var err error
		removed, err = s.sessionRepo.Unbind(ctx, token)
		if err != nil {
			return nil, NewBusinessError("LOGOUT_FAILED", "Logout failed", err)
		}
	}

	message := "Logged out"
	if !removed {
		message = "No active session"
	}

	return &dto.LogoutResponse{
		Message: message,
		Removed: removed,
	}, nil
}

// Account returns the public view of one account
func (s *AuthFlowImpl) Account(ctx context.Context, accountID uint) (*dto.AccountDTO, error) {
	account, err := s.accountRepo.ByID(ctx, accountID)
	if err != nil {
		return nil, NewBusinessError("ACCOUNT_LOOKUP_FAILED", "Account lookup failed", err)
	}
	if account == nil {
		return nil, NewBusinessError("ACCOUNT_NOT_FOUND", "Account not found", ErrAccountNotFound)
	}

	accountDTO := ToAccountDTO(*account)
	return &accountDTO, nil
}

// validateSignupRequest enforces the account constraints for callers
// that do not go through the HTTP layer's validator
func (s *AuthFlowImpl) validateSignupRequest(req *dto.SignupRequest) error {
	if len(strings.TrimSpace(req.Username)) < 3 {
		return ErrInvalidInput
	}
	if len(req.Password) < 6 {
		return ErrInvalidInput
	}
	return nil
}
