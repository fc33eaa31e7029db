// Package identity carries the verified caller and the resources resolved for
// a request through Fiber locals.
package identity

import (
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	userIDKey  = "user_id"
	contactKey = "contact"
)

func SetUserID(c *fiber.Ctx, userID string) {
	c.Locals(userIDKey, userID)
}

// GetUserID returns the caller id stored by the ownership middleware.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals(userIDKey).(string)
	if !ok || raw == "" {
		return uuid.Nil, apperr.Authentication("Unauthorized", nil)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Authentication("Unauthorized", err)
	}
	return id, nil
}

func SetContact(c *fiber.Ctx, contact *models.Contact) {
	c.Locals(contactKey, contact)
}

// GetContact returns the contact loaded by the existence middleware, if any.
func GetContact(c *fiber.Ctx) (*models.Contact, bool) {
	contact, ok := c.Locals(contactKey).(*models.Contact)
	return contact, ok && contact != nil
}

// ContactIDParam parses the :contactId route parameter.
func ContactIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("contactId"))
	if err != nil {
		return uuid.Nil, apperr.Validation("Invalid contact ID")
	}
	return id, nil
}
