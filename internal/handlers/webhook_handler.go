package handlers

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/strollapp/stroll-backend/internal/config"
	"github.com/strollapp/stroll-backend/internal/dto"
	"github.com/strollapp/stroll-backend/internal/services"
)

var errUnknownWebhookUser = errors.New("unknown webhook user")

type WebhookHandler struct {
	users         *services.UserService
	subscriptions *services.SubscriptionService
	cfg           *config.Config
}

func NewWebhookHandler(users *services.UserService, subscriptions *services.SubscriptionService, cfg *config.Config) *WebhookHandler {
	return &WebhookHandler{users: users, subscriptions: subscriptions, cfg: cfg}
}

// HandleSubscription ingests payment-provider events and maps them onto the
// same subscription transitions the client API uses. Auth is a shared secret
// in the Authorization header. Expiration events are ignored: windows lapse
// on their own and the derived state already reflects that.
func (h *WebhookHandler) HandleSubscription(c *fiber.Ctx) error {
	if h.cfg.WebhookSecret == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Webhooks not configured",
		})
	}

	authHeader := c.Get("Authorization")
	if subtle.ConstantTimeCompare([]byte(authHeader), []byte(h.cfg.WebhookSecret)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var webhook dto.SubscriptionWebhook
	if err := c.BodyParser(&webhook); err != nil {
		return badRequest(c, "Invalid webhook payload")
	}

	if err := h.processEvent(c, &webhook.Event); err != nil {
		if errors.Is(err, errUnknownWebhookUser) {
			return badRequest(c, "Unknown app_user_id")
		}
		// A cancellation for a user who already cancelled is a duplicate
		// delivery, not a failure.
		if errors.Is(err, services.ErrNotSubscribed) {
			return c.JSON(fiber.Map{"received": true})
		}
		slog.Error("webhook processing failed", "event_type", webhook.Event.Type, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to process webhook event",
		})
	}

	slog.Info("webhook processed", "event_type", webhook.Event.Type)
	return c.JSON(fiber.Map{"received": true})
}

func (h *WebhookHandler) processEvent(c *fiber.Ctx, event *dto.SubscriptionEvent) error {
	userID, err := strconv.ParseUint(event.AppUserID, 10, 64)
	if err != nil {
		return errUnknownWebhookUser
	}

	ctx := c.UserContext()
	user, err := h.users.FindByID(ctx, uint(userID))
	if err != nil {
		return err
	}
	if user == nil {
		return errUnknownWebhookUser
	}

	switch event.Type {
	case "INITIAL_PURCHASE", "RENEWAL":
		return h.subscriptions.Activate(ctx, user, msToTime(event.ExpirationAtMs))
	case "CANCELLATION":
		return h.subscriptions.Cancel(ctx, user)
	default:
		return nil
	}
}

func msToTime(ms int64) time.Time {
	return time.Unix(ms/1000, (ms%1000)*int64(time.Millisecond))
}
