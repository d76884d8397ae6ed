// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/Barkerprooks/void-voyager-backend/app/dto"
	businessflow "github.com/Barkerprooks/void-voyager-backend/business_flow"
	"github.com/Barkerprooks/void-voyager-backend/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// AuthHandlerInterface defines the contract for authentication handlers
type AuthHandlerInterface interface {
	Signup(c fiber.Ctx) error
	Login(c fiber.Ctx) error
	Logout(c fiber.Ctx) error
	Account(c fiber.Ctx) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authFlow     businessflow.AuthFlow
	validator    *validator.Validate
	cookieSecure bool
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authFlow businessflow.AuthFlow, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authFlow:     authFlow,
		validator:    validator.New(),
		cookieSecure: cookieSecure,
	}
}

func (h *AuthHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.NewErrorResponse(errorCode, message, details))
}

func (h *AuthHandler) SuccessResponse(c fiber.Ctx, statusCode int, data any) error {
	return c.Status(statusCode).JSON(dto.NewSuccessResponse(data))
}

// Signup handles account registration
func (h *AuthHandler) Signup(c fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorMessages(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.authFlow.Signup(h.createRequestContext(c, "/api/signup"), &req, metadata)
	if err != nil {
		if businessflow.IsUsernameAlreadyExists(err) {
			return h.ErrorResponse(c, fiber.StatusForbidden, "Username already exists", "USERNAME_EXISTS", nil)
		}
		if businessflow.IsInvalidInput(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid signup input", "INVALID_INPUT", nil)
		}

		log.Println("Signup failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Signup failed", "SIGNUP_FAILED", nil)
	}

	h.setSessionCookie(c, result.SessionToken)

	return h.SuccessResponse(c, fiber.StatusCreated, result)
}

// Login handles credential verification and session issuance. The
// session token is set as an HTTP-only cookie and repeated in the body.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorMessages(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.authFlow.Login(h.createRequestContext(c, "/api/login"), &req, metadata)
	if err != nil {
		if businessflow.IsInvalidCredentials(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials", "INVALID_CREDENTIALS", nil)
		}

		log.Println("Login failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Login failed", "LOGIN_FAILED", nil)
	}

	h.setSessionCookie(c, result.SessionToken)

	return h.SuccessResponse(c, fiber.StatusOK, result)
}

// Logout drops the current session and clears the cookie. Safe to call
// without a valid session.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	token := c.Cookies(utils.SessionCookieName)

	result, err := h.authFlow.Logout(h.createRequestContext(c, "/api/logout"), token)
	if err != nil {
		log.Println("Logout failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Logout failed", "LOGOUT_FAILED", nil)
	}

	c.Cookie(&fiber.Cookie{
		Name:     utils.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		Secure:   h.cookieSecure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return h.SuccessResponse(c, fiber.StatusOK, result)
}

// Account returns the public view of the requested account
func (h *AuthHandler) Account(c fiber.Ctx) error {
	accountID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid account ID", "INVALID_ACCOUNT_ID", nil)
	}

	result, err := h.authFlow.Account(h.createRequestContext(c, "/api/account/:id"), uint(accountID))
	if err != nil {
		if businessflow.IsAccountNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Account not found", "ACCOUNT_NOT_FOUND", nil)
		}

		log.Println("Account lookup failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Account lookup failed", "ACCOUNT_LOOKUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result)
}

// setSessionCookie installs the session token as an HTTP-only cookie
func (h *AuthHandler) setSessionCookie(c fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     utils.SessionCookieName,
		Value:    token,
		Path:     "/",
		Secure:   h.cookieSecure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// createRequestContext creates a context with timeout and request-scoped values
func (h *AuthHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx := context.WithValue(c.Context(), businessflow.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, businessflow.EndpointKey, endpoint)
	return ctx
}
