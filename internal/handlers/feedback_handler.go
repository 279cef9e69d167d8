package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/strollapp/stroll-backend/internal/dto"
	"github.com/strollapp/stroll-backend/internal/middleware"
	"github.com/strollapp/stroll-backend/internal/services"
)

type FeedbackHandler struct {
	feedback *services.FeedbackService
}

func NewFeedbackHandler(feedback *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

func (h *FeedbackHandler) Create(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)

	var req dto.CreateFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	feedback, err := h.feedback.Create(c.UserContext(), user, services.CreateFeedbackInput{
		Content:    req.Content,
		DeviceType: req.DeviceType,
		AppVersion: req.AppVersion,
	})
	if err != nil {
		if ve, ok := services.AsValidationError(err); ok {
			return validationFailed(c, ve)
		}
		slog.Error("feedback creation failed", "error", err, "user_id", user.ID)
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.FeedbackResponse{
		ID:        feedback.ID,
		Content:   feedback.Content,
		CreatedAt: formatTime(feedback.CreatedAt),
	})
}

// AdminList returns all feedback with author info. Admin only.
func (h *FeedbackHandler) AdminList(c *fiber.Ctx) error {
	feedbacks, err := h.feedback.ListAll(c.UserContext())
	if err != nil {
		slog.Error("feedback listing failed", "error", err)
		return internalError(c)
	}

	items := make([]dto.AdminFeedbackItem, 0, len(feedbacks))
	for i := range feedbacks {
		f := &feedbacks[i]
		items = append(items, dto.AdminFeedbackItem{
			ID: f.ID,
			User: dto.FeedbackAuthor{
				ID:       f.User.ID,
				Username: f.User.Username,
				Nickname: f.User.Nickname,
			},
			Content:    f.Content,
			DeviceType: f.DeviceType,
			AppVersion: f.AppVersion,
			CreatedAt:  formatTime(f.CreatedAt),
		})
	}

	return c.JSON(dto.AdminFeedbackListResponse{
		Items:      items,
		TotalCount: len(items),
	})
}
