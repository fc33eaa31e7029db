package handlers

import (
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ContactHandler struct {
	contactService *services.ContactService
}

func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// CreateContact handles POST /users/:userId/contacts.
func (h *ContactHandler) CreateContact(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}

	contact, err := h.contactService.Create(c.UserContext(), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(contact)
}

// ListContacts handles GET /users/:userId/contacts?limit=&offset=&sortBy=.
func (h *ContactHandler) ListContacts(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return err
	}

	q := services.NormalizeListQuery(dto.ListContactsQuery{
		Limit:  c.QueryInt("limit", services.DefaultLimit),
		Offset: c.QueryInt("offset", 0),
		SortBy: c.Query("sortBy", services.SortAlphabetically),
	})
	contacts, total, err := h.contactService.List(c.UserContext(), userID, q)
	if err != nil {
		return err
	}

	return c.JSON(dto.ContactsListResponse{
		Contacts: contacts,
		Total:    total,
		Limit:    q.Limit,
		Offset:   q.Offset,
		SortBy:   q.SortBy,
	})
}

// GetContact handles GET /users/:userId/contacts/:contactId.
func (h *ContactHandler) GetContact(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return err
	}
	contactID, err := resolveContactID(c)
	if err != nil {
		return err
	}

	contact, err := h.contactService.Get(c.UserContext(), userID, contactID)
	if err != nil {
		return err
	}
	return c.JSON(contact)
}

// UpdateContact handles PATCH /users/:userId/contacts/:contactId.
func (h *ContactHandler) UpdateContact(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return err
	}
	contactID, err := resolveContactID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateContactRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return errInvalidBody
		}
	}

	contact, err := h.contactService.Update(c.UserContext(), userID, contactID, &req)
	if err != nil {
		return err
	}
	return c.JSON(contact)
}

// DeleteContact handles DELETE /users/:userId/contacts/:contactId.
func (h *ContactHandler) DeleteContact(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return err
	}
	contactID, err := resolveContactID(c)
	if err != nil {
		return err
	}

	if err := h.contactService.Delete(c.UserContext(), userID, contactID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// resolveContactID prefers the contact already resolved by the existence middleware.
func resolveContactID(c *fiber.Ctx) (uuid.UUID, error) {
	if contact, ok := identity.GetContact(c); ok {
		return contact.ID, nil
	}
	return identity.ContactIDParam(c)
}
