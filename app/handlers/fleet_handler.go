// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"strconv"

	"github.com/Barkerprooks/void-voyager-backend/app/dto"
	"github.com/Barkerprooks/void-voyager-backend/app/middleware"
	businessflow "github.com/Barkerprooks/void-voyager-backend/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// FleetHandlerInterface defines the contract for fleet handlers
type FleetHandlerInterface interface {
	Catalog(c fiber.Ctx) error
	Fleet(c fiber.Ctx) error
	Buy(c fiber.Ctx) error
	Rename(c fiber.Ctx) error
	Sell(c fiber.Ctx) error
}

// FleetHandler handles catalog and fleet HTTP requests
type FleetHandler struct {
	fleetFlow businessflow.FleetFlow
	validator *validator.Validate
}

// NewFleetHandler creates a new fleet handler
func NewFleetHandler(fleetFlow businessflow.FleetFlow) *FleetHandler {
	return &FleetHandler{
		fleetFlow: fleetFlow,
		validator: validator.New(),
	}
}

func (h *FleetHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.NewErrorResponse(errorCode, message, details))
}

func (h *FleetHandler) SuccessResponse(c fiber.Ctx, statusCode int, data any) error {
	return c.Status(statusCode).JSON(dto.NewSuccessResponse(data))
}

// Catalog returns every purchasable ship type
func (h *FleetHandler) Catalog(c fiber.Ctx) error {
	result, err := h.fleetFlow.Catalog(h.createRequestContext(c, "/api/ships"))
	if err != nil {
		log.Println("Catalog failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load ship catalog", "CATALOG_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result)
}

// Fleet returns the ships owned by the logged-in account
func (h *FleetHandler) Fleet(c fiber.Ctx) error {
	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	result, err := h.fleetFlow.ListFleet(h.createRequestContext(c, "/api/fleet"), accountID)
	if err != nil {
		log.Println("Fleet list failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list fleet", "FLEET_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result)
}

// Buy purchases a catalog ship for the logged-in account
func (h *FleetHandler) Buy(c fiber.Ctx) error {
	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.BuyShipRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorMessages(err))
	}

	result, err := h.fleetFlow.BuyShip(h.createRequestContext(c, "/api/fleet/buy"), accountID, &req)
	if err != nil {
		if businessflow.IsShipTypeNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Ship type not found", "SHIP_TYPE_NOT_FOUND", nil)
		}
		if businessflow.IsInsufficientFunds(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Insufficient funds", "INSUFFICIENT_FUNDS", nil)
		}
		if businessflow.IsInvalidInput(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Ship type ID or name is required", "SHIP_TYPE_REQUIRED", nil)
		}

		log.Println("Purchase failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Purchase failed", "BUY_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, result)
}

// Rename changes the display name of an owned ship
func (h *FleetHandler) Rename(c fiber.Ctx) error {
	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	ownedShipID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid ship ID", "INVALID_SHIP_ID", nil)
	}

	var req dto.RenameShipRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorMessages(err))
	}

	result, err := h.fleetFlow.RenameShip(h.createRequestContext(c, "/api/fleet/:id/rename"), accountID, uint(ownedShipID), &req)
	if err != nil {
		return h.fleetErrorResponse(c, err, "Rename failed", "RENAME_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result)
}

// Sell removes an owned ship and refunds its catalog cost
func (h *FleetHandler) Sell(c fiber.Ctx) error {
	accountID, ok := middleware.GetAccountIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	ownedShipID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid ship ID", "INVALID_SHIP_ID", nil)
	}

	result, err := h.fleetFlow.SellShip(h.createRequestContext(c, "/api/fleet/:id/sell"), accountID, uint(ownedShipID))
	if err != nil {
		return h.fleetErrorResponse(c, err, "Sale failed", "SELL_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result)
}

// fleetErrorResponse maps shared ownership errors to HTTP statuses
func (h *FleetHandler) fleetErrorResponse(c fiber.Ctx, err error, genericMessage, genericCode string) error {
	if businessflow.IsShipNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Ship not found", "SHIP_NOT_FOUND", nil)
	}
	if businessflow.IsNotOwner(err) {
		return h.ErrorResponse(c, fiber.StatusForbidden, "Ship belongs to another account", "NOT_OWNER", nil)
	}
	if businessflow.IsInvalidInput(err) {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid input", "INVALID_INPUT", nil)
	}

	log.Println(genericMessage, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, genericMessage, genericCode, nil)
}

// createRequestContext creates a context with request-scoped values
func (h *FleetHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx := context.WithValue(c.Context(), businessflow.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, businessflow.EndpointKey, endpoint)
	return ctx
}
