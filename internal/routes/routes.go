package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Deps struct {
	Tokens         *auth.TokenService
	Policy         auth.Policy
	ContactService *services.ContactService
	UserHandler    *handlers.UserHandler
	ContactHandler *handlers.ContactHandler
	HealthHandler  *handlers.HealthHandler
}

func Setup(app *fiber.App, cfg *config.Config, deps Deps) {
	// General rate limiter per IP
	app.Use(limiter.New(limiter.Config{
		Max:               cfg.RateLimit,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	app.Get("/api/health", deps.HealthHandler.Check)

	// Signup and login get a stricter limit
	authLimit := limiter.New(limiter.Config{
		Max:               cfg.AuthRateLimit,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	app.Post("/users", authLimit, deps.UserHandler.Signup)
	app.Post("/login", authLimit, deps.UserHandler.Login)

	// Everything under /users/:userId is scoped to the token's owner
	user := app.Group("/users/:userId", middleware.JWTProtected(deps.Tokens), middleware.RequireOwner(deps.Policy))
	user.Get("/", deps.UserHandler.Profile)

	contacts := user.Group("/contacts")
	contacts.Post("/", deps.ContactHandler.CreateContact)
	contacts.Get("/", deps.ContactHandler.ListContacts)
	contacts.Get("/:contactId", middleware.ContactExists(deps.ContactService), deps.ContactHandler.GetContact)
	contacts.Patch("/:contactId", deps.ContactHandler.UpdateContact)
	contacts.Delete("/:contactId", middleware.ContactExists(deps.ContactService), deps.ContactHandler.DeleteContact)
}
