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

type WalkHandler struct {
	walks     *services.WalkService
	presigner storage.Presigner
	cfg       *config.Config
}

func NewWalkHandler(walks *services.WalkService, presigner storage.Presigner, cfg *config.Config) *WalkHandler {
	return &WalkHandler{walks: walks, presigner: presigner, cfg: cfg}
}

// PresignedUploadURL hands the client a short-lived PUT URL plus the object
// key to store alongside the walk. Nothing is persisted here; if URL
// issuance fails the client simply retries.
func (h *WalkHandler) PresignedUploadURL(c *fiber.Ctx) error {
	// The body is optional; an empty request falls back to defaults.
	var req dto.PresignedURLRequest
	_ = c.BodyParser(&req)
	if req.ContentType == "" {
		req.ContentType = "image/jpeg"
	}

	upload, err := h.presigner.PresignUpload(c.UserContext(), req.ContentType, h.cfg.UploadURLTTL)
	if err != nil {
		slog.Error("upload URL issuance failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to generate upload URL",
		})
	}

	return c.JSON(dto.PresignedURLResponse{
		UploadURL: upload.URL,
		PhotoKey:  upload.Key,
		ExpiresIn: int64(h.cfg.UploadURLTTL.Seconds()),
	})
}

func (h *WalkHandler) Create(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)

	var req dto.CreateWalkRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.StartedAt == "" || req.EndedAt == "" || req.DurationSeconds == 0 {
		return badRequest(c, "started_at, ended_at and duration_seconds are required")
	}

	startedAt, err := time.Parse(time.RFC3339, req.StartedAt)
	if err != nil {
		return badRequest(c, "started_at must be RFC 3339")
	}
	endedAt, err := time.Parse(time.RFC3339, req.EndedAt)
	if err != nil {
		return badRequest(c, "ended_at must be RFC 3339")
	}

	walk, err := h.walks.Create(c.UserContext(), user, services.CreateWalkInput{
		StartedAt:       startedAt,
		EndedAt:         endedAt,
		DurationSeconds: req.DurationSeconds,
		DistanceMeters:  req.DistanceMeters,
		StepCount:       req.StepCount,
		PhotoKey:        req.PhotoKey,
	})
	if err != nil {
		if ve, ok := services.AsValidationError(err); ok {
			return validationFailed(c, ve)
		}
		slog.Error("walk creation failed", "error", err, "user_id", user.ID)
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(h.walkResponse(c, walk))
}

func (h *WalkHandler) List(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)

	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 20)

	walks, total, err := h.walks.List(c.UserContext(), user, page, perPage)
	if err != nil {
		slog.Error("walk listing failed", "error", err, "user_id", user.ID)
		return internalError(c)
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}

	items := make([]dto.WalkListItem, 0, len(walks))
	for i := range walks {
		items = append(items, h.walkListItem(c, &walks[i]))
	}

	return c.JSON(dto.WalkListResponse{
		Items:      items,
		Page:       page,
		PerPage:    perPage,
		TotalCount: total,
	})
}

func (h *WalkHandler) Show(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return notFound(c, "Walk not found")
	}

	walk, err := h.walks.Get(c.UserContext(), user, uint(id))
	if err != nil {
		if errors.Is(err, services.ErrWalkNotFound) {
			return notFound(c, "Walk not found")
		}
		slog.Error("walk lookup failed", "error", err, "user_id", user.ID)
		return internalError(c)
	}

	return c.JSON(h.walkResponse(c, walk))
}

func (h *WalkHandler) Delete(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return notFound(c, "Walk not found")
	}

	if err := h.walks.SoftDelete(c.UserContext(), user, uint(id)); err != nil {
		if errors.Is(err, services.ErrWalkNotFound) {
			return notFound(c, "Walk not found")
		}
		slog.Error("walk deletion failed", "error", err, "user_id", user.ID)
		return internalError(c)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// DailySummary returns the aggregate for one calendar day. Days without
// walks come back zeroed rather than 404, so the client can render an
// empty day without special-casing.
func (h *WalkHandler) DailySummary(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)

	day, err := time.Parse("2006-01-02", c.Params("date"))
	if err != nil {
		return badRequest(c, "date must be YYYY-MM-DD")
	}

	summary, err := h.walks.DailySummary(c.UserContext(), user, day)
	if err != nil {
		slog.Error("daily summary failed", "error", err, "user_id", user.ID)
		return internalError(c)
	}

	return c.JSON(dailySummaryResponse(summary))
}

// DailySummaryList groups the user's walks by day, optionally bounded by
// start_date and end_date query parameters.
func (h *WalkHandler) DailySummaryList(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)

	var from, to time.Time
	if raw := c.Query("start_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return badRequest(c, "start_date must be YYYY-MM-DD")
		}
		from = parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return badRequest(c, "end_date must be YYYY-MM-DD")
		}
		to = parsed
	}

	summaries, err := h.walks.DailySummaries(c.UserContext(), user, from, to)
	if err != nil {
		slog.Error("daily summary listing failed", "error", err, "user_id", user.ID)
		return internalError(c)
	}

	items := make([]dto.DailyWalkSummaryResponse, 0, len(summaries))
	for i := range summaries {
		items = append(items, dailySummaryResponse(&summaries[i]))
	}
	return c.JSON(dto.DailyWalkSummaryListResponse{Items: items})
}

func dailySummaryResponse(s *services.DailySummary) dto.DailyWalkSummaryResponse {
	return dto.DailyWalkSummaryResponse{
		Date:                 s.Date,
		WalkCount:            s.WalkCount,
		TotalDurationSeconds: s.TotalDurationSeconds,
		TotalDistanceMeters:  s.TotalDistanceMeters,
		TotalStepCount:       s.TotalStepCount,
		GoalAchieved:         s.GoalAchieved,
		HasWalk10Min:         s.HasWalk10Min,
	}
}

// photoResponse resolves the stored key to a fresh presigned GET URL. A
// storage hiccup degrades to a key-only response rather than failing the
// whole request.
func (h *WalkHandler) photoResponse(c *fiber.Ctx, walk *models.Walk) dto.PhotoResponse {
	resp := dto.PhotoResponse{Key: walk.PhotoKey}
	if walk.PhotoKey == nil {
		return resp
	}

	url, err := h.presigner.PresignDownload(c.UserContext(), *walk.PhotoKey, h.cfg.DownloadURLTTL)
	if err != nil {
		slog.Error("photo URL issuance failed", "error", err, "key", *walk.PhotoKey)
		return resp
	}
	if url != "" {
		resp.URL = &url
	}
	return resp
}

func (h *WalkHandler) walkResponse(c *fiber.Ctx, walk *models.Walk) dto.WalkResponse {
	return dto.WalkResponse{
		ID:              walk.ID,
		DistanceMeters:  walk.DistanceMeters,
		StepCount:       walk.StepCount,
		DurationSeconds: walk.DurationSeconds,
		StartedAt:       formatTime(walk.StartedAt),
		EndedAt:         formatTime(walk.EndedAt),
		Photo:           h.photoResponse(c, walk),
		CreatedAt:       formatTime(walk.CreatedAt),
		UpdatedAt:       formatTime(walk.UpdatedAt),
	}
}

func (h *WalkHandler) walkListItem(c *fiber.Ctx, walk *models.Walk) dto.WalkListItem {
	return dto.WalkListItem{
		ID:              walk.ID,
		Date:            walk.Date(),
		DistanceMeters:  walk.DistanceMeters,
		StepCount:       walk.StepCount,
		DurationSeconds: walk.DurationSeconds,
		Photo:           h.photoResponse(c, walk),
		CreatedAt:       formatTime(walk.CreatedAt),
		UpdatedAt:       formatTime(walk.UpdatedAt),
	}
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}
