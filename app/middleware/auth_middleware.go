// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"log"

	"github.com/Barkerprooks/void-voyager-backend/app/dto"
	"github.com/Barkerprooks/void-voyager-backend/repository"
	"github.com/Barkerprooks/void-voyager-backend/utils"
	"github.com/gofiber/fiber/v3"
)

// AuthMiddleware resolves the session cookie for protected endpoints
type AuthMiddleware struct {
	sessionRepo repository.SessionRepository
	accountRepo repository.AccountRepository
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(sessionRepo repository.SessionRepository, accountRepo repository.AccountRepository) *AuthMiddleware {
	return &AuthMiddleware{
		sessionRepo: sessionRepo,
		accountRepo: accountRepo,
	}
}

// Authenticate validates the session cookie and loads the account ID
// into the request context. A session whose account has vanished is
// unbound on the spot so the dangling token cannot be replayed.
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		token := c.Cookies(utils.SessionCookieName)
		if token == "" {
			return unauthenticated(c, "Login required", "MISSING_SESSION")
		}

		session, err := m.sessionRepo.Resolve(c.Context(), token)
		if err != nil {
			log.Println("Session resolution failed", err)
			return unauthenticated(c, "Session validation failed", "SESSION_VALIDATION_FAILED")
		}
		if session == nil {
			return unauthenticated(c, "Session expired or invalid", "INVALID_SESSION")
		}

		account, err := m.accountRepo.ByID(c.Context(), session.AccountID)
		if err != nil {
			log.Println("Account lookup failed during authentication", err)
			return unauthenticated(c, "Session validation failed", "SESSION_VALIDATION_FAILED")
		}
		if account == nil {
			_, _ = m.sessionRepo.Unbind(c.Context(), token)
			return unauthenticated(c, "Session expired or invalid", "INVALID_SESSION")
		}

		c.Locals("account_id", account.ID)
		c.Locals("is_admin", utils.IsTrue(account.IsAdmin))
		c.Locals("correlation_id", session.CorrelationID.String())

		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals("request_id", requestID)
		}

		return c.Next()
	}
}

func unauthenticated(c fiber.Ctx, message, code string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.NewErrorResponse(code, message, nil))
}

// GetAccountIDFromContext extracts the logged-in account ID from the request context
func GetAccountIDFromContext(c fiber.Ctx) (uint, bool) {
	accountID, ok := c.Locals("account_id").(uint)
	return accountID, ok
}

// IsAdminFromContext reports whether the logged-in account is an admin
func IsAdminFromContext(c fiber.Ctx) bool {
	isAdmin, ok := c.Locals("is_admin").(bool)
	return ok && isAdmin
}
