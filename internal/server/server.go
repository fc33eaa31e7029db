package server

import (
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// New wires services, handlers, middleware and routes into a Fiber app.
func New(cfg *config.Config, db *gorm.DB, tokens *auth.TokenService) *fiber.App {
	userService := services.NewUserService(db, tokens)
	contactService := services.NewContactService(db)

	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, cfg, routes.Deps{
		Tokens:         tokens,
		Policy:         auth.OwnerPolicy{},
		ContactService: contactService,
		UserHandler:    handlers.NewUserHandler(userService),
		ContactHandler: handlers.NewContactHandler(contactService),
		HealthHandler:  handlers.NewHealthHandler(db),
	})

	return app
}
