package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/strollapp/stroll-backend/internal/config"
	"github.com/strollapp/stroll-backend/internal/dto"
	"github.com/strollapp/stroll-backend/internal/middleware"
	"github.com/strollapp/stroll-backend/internal/models"
	"github.com/strollapp/stroll-backend/internal/services"
	"github.com/strollapp/stroll-backend/internal/storage"
)

type ShareCardHandler struct {
	cards     *services.ShareCardService
	presigner storage.Presigner
	cfg       *config.Config
}

func NewShareCardHandler(cards *services.ShareCardService, presigner storage.Presigner, cfg *config.Config) *ShareCardHandler {
	return &ShareCardHandler{cards: cards, presigner: presigner, cfg: cfg}
}

// Create saves a share card for one of the user's walks. Metric fields
// omitted by the client are snapshotted from the walk.
func (h *ShareCardHandler) Create(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)

	var req dto.CreateShareCardRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.CardDate == "" {
		return badRequest(c, "walk_id and card_date are required")
	}

	cardDate, err := time.Parse("2006-01-02", req.CardDate)
	if err != nil {
		return badRequest(c, "card_date must be YYYY-MM-DD")
	}

	card, err := h.cards.Create(c.UserContext(), user, services.CreateShareCardInput{
		WalkID:          req.WalkID,
		CardDate:        cardDate,
		FrameThemeKey:   req.FrameThemeKey,
		ImageKey:        req.ImageKey,
		DistanceMeters:  req.DistanceMeters,
		StepCount:       req.StepCount,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		if errors.Is(err, services.ErrWalkNotFound) {
			return notFound(c, "Walk not found")
		}
		if ve, ok := services.AsValidationError(err); ok {
			return validationFailed(c, ve)
		}
		slog.Error("share card creation failed", "error", err, "user_id", user.ID)
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(h.cardResponse(c, card))
}

// List returns the user's share cards, optionally filtered by card date.
func (h *ShareCardHandler) List(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return badRequest(c, "date must be YYYY-MM-DD")
		}
		date = &parsed
	}

	cards, err := h.cards.List(c.UserContext(), user, date)
	if err != nil {
		slog.Error("share card listing failed", "error", err, "user_id", user.ID)
		return internalError(c)
	}

	items := make([]dto.ShareCardResponse, 0, len(cards))
	for i := range cards {
		items = append(items, h.cardResponse(c, &cards[i]))
	}

	return c.JSON(dto.ShareCardListResponse{
		Items:      items,
		TotalCount: len(items),
	})
}

func (h *ShareCardHandler) cardResponse(c *fiber.Ctx, card *models.ShareCard) dto.ShareCardResponse {
	image := dto.PhotoResponse{Key: card.ImageKey}
	if card.ImageKey != nil {
		url, err := h.presigner.PresignDownload(c.UserContext(), *card.ImageKey, h.cfg.DownloadURLTTL)
		if err != nil {
			slog.Error("card image URL issuance failed", "error", err, "key", *card.ImageKey)
		} else if url != "" {
			image.URL = &url
		}
	}

	return dto.ShareCardResponse{
		ID:              card.ID,
		WalkID:          card.WalkID,
		CardDate:        card.Date(),
		FrameThemeKey:   card.FrameThemeKey,
		Image:           image,
		DistanceMeters:  card.DistanceMeters,
		StepCount:       card.StepCount,
		DurationSeconds: card.DurationSeconds,
		CreatedAt:       formatTime(card.CreatedAt),
	}
}
