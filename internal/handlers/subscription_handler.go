package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/strollapp/stroll-backend/internal/dto"
	"github.com/strollapp/stroll-backend/internal/middleware"
	"github.com/strollapp/stroll-backend/internal/services"
)

type SubscriptionHandler struct {
	subscriptions *services.SubscriptionService
}

func NewSubscriptionHandler(subscriptions *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

// Show returns the entitlement snapshot for the authenticated user.
func (h *SubscriptionHandler) Show(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)
	status := h.subscriptions.StatusOf(user)

	return c.JSON(dto.SubscriptionStatusResponse{
		Type:                  status.Type,
		IsSubscribed:          status.IsSubscribed,
		IsTrial:               status.IsTrial,
		IsExpired:             status.IsExpired,
		HasUsedTrial:          status.HasUsedTrial,
		HasEverSubscribed:     status.HasEverSubscribed,
		SubscriptionExpiresAt: formatTimePtr(status.SubscriptionExpiresAt),
		TrialExpiresAt:        formatTimePtr(status.TrialExpiresAt),
		DaysLeft:              status.DaysLeft,
	})
}

// StartTrial opens the once-per-account 7-day trial.
func (h *SubscriptionHandler) StartTrial(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)

	err := h.subscriptions.StartTrial(c.UserContext(), user)
	if err != nil {
		if errors.Is(err, services.ErrTrialAlreadyUsed) || errors.Is(err, services.ErrTrialActive) {
			return badRequest(c, err.Error())
		}
		slog.Error("trial start failed", "error", err, "user_id", user.ID)
		return internalError(c)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Activate records a store purchase and opens the paid window.
func (h *SubscriptionHandler) Activate(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)

	var req dto.ActivateSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Platform == "" || req.TransactionID == "" || req.ExpiresAt == "" {
		return badRequest(c, "platform, transaction_id and expires_at are required")
	}

	expiresAt, err := time.Parse(time.RFC3339, req.ExpiresAt)
	if err != nil {
		return badRequest(c, "expires_at must be RFC 3339")
	}

	if err := h.subscriptions.Activate(c.UserContext(), user, expiresAt); err != nil {
		slog.Error("subscription activation failed", "error", err, "user_id", user.ID)
		return internalError(c)
	}

	return c.JSON(dto.SubscriptionActivatedResponse{
		Status:                "subscribed",
		SubscriptionExpiresAt: formatTimePtr(user.SubscriptionExpiresAt),
		DaysLeft:              h.subscriptions.DaysLeft(user),
		HasEverSubscribed:     user.HasEverSubscribed,
	})
}

// Cancel clears the subscribed flag; the remaining window stays recorded.
func (h *SubscriptionHandler) Cancel(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)

	err := h.subscriptions.Cancel(c.UserContext(), user)
	if err != nil {
		if errors.Is(err, services.ErrNotSubscribed) {
			return badRequest(c, err.Error())
		}
		slog.Error("subscription cancellation failed", "error", err, "user_id", user.ID)
		return internalError(c)
	}

	return c.JSON(dto.SubscriptionCancelledResponse{
		Status:    "cancelled",
		ExpiresAt: formatTimePtr(user.SubscriptionExpiresAt),
	})
}
