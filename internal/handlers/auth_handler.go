package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/strollapp/stroll-backend/internal/dto"
	"github.com/strollapp/stroll-backend/internal/middleware"
	"github.com/strollapp/stroll-backend/internal/models"
	"github.com/strollapp/stroll-backend/internal/services"
	"github.com/strollapp/stroll-backend/internal/token"
)

type AuthHandler struct {
	users  *services.UserService
	tokens *token.Service
}

func NewAuthHandler(users *services.UserService, tokens *token.Service) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// SocialVerify checks whether a social identity is registered. Known users
// get logged in on the spot; unknown identities are told to sign up.
func (h *AuthHandler) SocialVerify(c *fiber.Ctx) error {
	var req dto.SocialVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Provider == "" || req.ProviderID == "" {
		return badRequest(c, "provider and provider_id are required")
	}
	if !models.ValidProvider(req.Provider) {
		return badRequest(c, "unsupported provider")
	}

	user, err := h.users.FindBySocialIdentity(c.UserContext(), req.Provider, req.ProviderID)
	if err != nil {
		slog.Error("social verify lookup failed", "error", err)
		return internalError(c)
	}

	if user == nil {
		return c.JSON(dto.SocialVerifyResponse{
			Status:   dto.VerifyStatusNeedSignup,
			Provider: req.Provider,
		})
	}

	if err := h.users.TouchLastLogin(c.UserContext(), user); err != nil {
		slog.Error("failed to record login", "error", err, "user_id", user.ID)
	}

	accessToken, err := h.users.IssueToken(user)
	if err != nil {
		slog.Error("token issuance failed", "error", err, "user_id", user.ID)
		return internalError(c)
	}

	resp := dto.SocialVerifyResponse{
		Status: dto.VerifyStatusExists,
		User:   userResponse(user, false),
		Token:  h.tokenResponse(accessToken),
	}
	return c.JSON(resp)
}

// SocialSignup registers a first-time social user and logs them in.
func (h *AuthHandler) SocialSignup(c *fiber.Ctx) error {
	var req dto.SocialSignupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Provider == "" || req.ProviderID == "" || req.Nickname == "" {
		return badRequest(c, "provider, provider_id and nickname are required")
	}

	user, err := h.users.Create(c.UserContext(), services.CreateUserInput{
		Provider:         req.Provider,
		ProviderID:       req.ProviderID,
		Username:         req.Username,
		Nickname:         req.Nickname,
		ProfileImageCode: req.ProfileImageCode,
	})
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) || errors.Is(err, services.ErrIdentityTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if ve, ok := services.AsValidationError(err); ok {
			return validationFailed(c, ve)
		}
		slog.Error("signup failed", "error", err)
		return internalError(c)
	}

	accessToken, err := h.users.IssueToken(user)
	if err != nil {
		slog.Error("token issuance failed", "error", err, "user_id", user.ID)
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SocialSignupResponse{
		User:  *userResponse(user, true),
		Token: *h.tokenResponse(accessToken),
	})
}

// CheckID reports whether a username is still available.
func (h *AuthHandler) CheckID(c *fiber.Ctx) error {
	username := c.Query("username")
	if username == "" {
		return badRequest(c, "username is required")
	}

	available, err := h.users.UsernameAvailable(c.UserContext(), username)
	if err != nil {
		slog.Error("username check failed", "error", err)
		return internalError(c)
	}

	return c.JSON(dto.CheckIDResponse{Username: username, Available: available})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)
	return c.JSON(userResponse(user, true))
}

// Logout bumps the token version, revoking every outstanding token at once.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)
	if err := h.users.IncrementTokenVersion(c.UserContext(), user); err != nil {
		slog.Error("logout failed", "error", err, "user_id", user.ID)
		return internalError(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteMe soft-deletes the account. The username and social identity become
// available for re-registration.
func (h *AuthHandler) DeleteMe(c *fiber.Ctx) error {
	user := middleware.UserFromContext(c)
	if err := h.users.SoftDelete(c.UserContext(), user); err != nil {
		slog.Error("account deletion failed", "error", err, "user_id", user.ID)
		return internalError(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) tokenResponse(accessToken string) *dto.TokenResponse {
	resp := &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}
	if ttl := h.tokens.TTL(); ttl > 0 {
		seconds := int64(ttl.Seconds())
		resp.ExpiresIn = &seconds
	}
	return resp
}

func userResponse(user *models.User, withTimestamps bool) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:               user.ID,
		Username:         user.Username,
		Nickname:         user.Nickname,
		ProfileImageCode: user.ProfileImageCode,
		Provider:         user.Provider,
	}
	if withTimestamps {
		resp.CreatedAt = formatTime(user.CreatedAt)
		resp.UpdatedAt = formatTime(user.UpdatedAt)
	}
	return resp
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

func validationFailed(c *fiber.Ctx, ve *services.ValidationError) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse{
		Error:   true,
		Message: "Validation failed",
		Fields:  ve.Fields,
	})
}
