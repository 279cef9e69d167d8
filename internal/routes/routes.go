package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/strollapp/stroll-backend/internal/config"
	"github.com/strollapp/stroll-backend/internal/handlers"
	"github.com/strollapp/stroll-backend/internal/middleware"
	"github.com/strollapp/stroll-backend/internal/services"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	users *services.UserService,
	authHandler *handlers.AuthHandler,
	walkHandler *handlers.WalkHandler,
	shareCardHandler *handlers.ShareCardHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	feedbackHandler *handlers.FeedbackHandler,
	webhookHandler *handlers.WebhookHandler,
	configHandler *handlers.RemoteConfigHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)
	api.Get("/config", configHandler.GetConfig)

	// Auth — public, with a stricter 10 req/min limit
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/social/verify", authHandler.SocialVerify)
	auth.Post("/social/signup", authHandler.SocialSignup)

	api.Get("/users/check_id", authHandler.CheckID)

	// Webhooks authenticate with a shared secret, not a JWT
	api.Post("/webhooks/subscription", webhookHandler.HandleSubscription)

	// Protected routes: JWT signature check, then token-version guard
	protected := api.Group("", middleware.Protected(cfg), middleware.CurrentUser(users))

	protected.Get("/me", authHandler.Me)
	protected.Delete("/me", authHandler.DeleteMe)
	protected.Post("/auth/logout", authHandler.Logout)

	protected.Post("/uploads/presigned_url", walkHandler.PresignedUploadURL)

	protected.Post("/walks", walkHandler.Create)
	protected.Get("/walks", walkHandler.List)
	protected.Get("/walks/:id", walkHandler.Show)
	protected.Delete("/walks/:id", walkHandler.Delete)

	protected.Get("/daily_walks", walkHandler.DailySummaryList)
	protected.Get("/daily_walks/:date", walkHandler.DailySummary)

	protected.Post("/share_cards", shareCardHandler.Create)
	protected.Get("/share_cards", shareCardHandler.List)

	protected.Get("/me/subscription", subscriptionHandler.Show)
	protected.Post("/me/subscription/trial", subscriptionHandler.StartTrial)
	protected.Post("/me/subscription", subscriptionHandler.Activate)
	protected.Delete("/me/subscription", subscriptionHandler.Cancel)

	protected.Post("/feedbacks", feedbackHandler.Create)

	// Admin panel
	admin := api.Group("/admin", middleware.Protected(cfg), middleware.CurrentUser(users), middleware.AdminRequired(cfg))
	admin.Get("/feedbacks", feedbackHandler.AdminList)
	admin.Put("/config/:key", configHandler.SetConfigKey)
	admin.Delete("/config/:key", configHandler.DeleteConfigKey)
}
