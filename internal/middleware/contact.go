package middleware

import (
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ContactExists short-circuits with 404 when the :contactId in the path is
// not one of the caller's contacts. Must run after RequireOwner.
func ContactExists(contacts *services.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := identity.GetUserID(c)
		if err != nil {
			return err
		}
		contactID, err := identity.ContactIDParam(c)
		if err != nil {
			return err
		}

		contact, err := contacts.Find(c.UserContext(), userID, contactID)
		if err != nil {
			return err
		}
		identity.SetContact(c, contact)
		return c.Next()
	}
}
