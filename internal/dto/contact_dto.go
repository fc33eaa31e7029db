package dto

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/models"
)

// CreateContactRequest keeps contact and phone fields in separate objects so
// each field has exactly one destination.
type CreateContactRequest struct {
	Contact *ContactFields `json:"contact" validate:"required"`
	Phone   *PhoneFields   `json:"phone" validate:"required"`
}

type ContactFields struct {
	FirstName string `json:"firstName" validate:"required,max=255"`
	LastName  string `json:"lastName" validate:"max=255"`
	Email     string `json:"email" validate:"omitempty,email,max=255"`
	Address   string `json:"address" validate:"max=500"`
}

type PhoneFields struct {
	PhoneType   string `json:"phoneType" validate:"required,oneof=work home mobile other"`
	PhoneNumber string `json:"phoneNumber" validate:"required,max=50"`
}

// Trim strips surrounding whitespace so a blank name fails "required".
func (r *CreateContactRequest) Trim() {
	if c := r.Contact; c != nil {
		c.FirstName = strings.TrimSpace(c.FirstName)
		c.LastName = strings.TrimSpace(c.LastName)
		c.Email = strings.TrimSpace(c.Email)
		c.Address = strings.TrimSpace(c.Address)
	}
	if p := r.Phone; p != nil {
		p.PhoneType = strings.TrimSpace(p.PhoneType)
		p.PhoneNumber = strings.TrimSpace(p.PhoneNumber)
	}
}

// UpdateContactRequest is a partial update; nil fields are left untouched.
type UpdateContactRequest struct {
	Contact *ContactPatch `json:"contact"`
	Phone   *PhonePatch   `json:"phone"`
}

type ContactPatch struct {
	FirstName *string `json:"firstName" validate:"omitnil,min=1,max=255"`
	LastName  *string `json:"lastName" validate:"omitnil,max=255"`
	Email     *string `json:"email" validate:"omitnil,email,max=255"`
	Address   *string `json:"address" validate:"omitnil,max=500"`
}

type PhonePatch struct {
	PhoneType   *string `json:"phoneType" validate:"omitnil,oneof=work home mobile other"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitnil,min=1,max=50"`
}

// Empty reports whether the request would change nothing.
func (r *UpdateContactRequest) Empty() bool {
	return r.ContactUpdates() == nil && r.PhoneUpdates() == nil
}

// Trim strips surrounding whitespace from the fields that are present.
func (r *UpdateContactRequest) Trim() {
	if c := r.Contact; c != nil {
		trimPtr(c.FirstName)
		trimPtr(c.LastName)
		trimPtr(c.Email)
		trimPtr(c.Address)
	}
	if p := r.Phone; p != nil {
		trimPtr(p.PhoneType)
		trimPtr(p.PhoneNumber)
	}
}

func trimPtr(value *string) {
	if value != nil {
		*value = strings.TrimSpace(*value)
	}
}

// ContactUpdates returns the column changes for the contact row, or nil.
func (r *UpdateContactRequest) ContactUpdates() map[string]interface{} {
	if r.Contact == nil {
		return nil
	}
	updates := map[string]interface{}{}
	setIfPresent(updates, "first_name", r.Contact.FirstName)
	setIfPresent(updates, "last_name", r.Contact.LastName)
	setIfPresent(updates, "email", r.Contact.Email)
	setIfPresent(updates, "address", r.Contact.Address)
	if len(updates) == 0 {
		return nil
	}
	return updates
}

// PhoneUpdates returns the column changes for the phone row, or nil.
func (r *UpdateContactRequest) PhoneUpdates() map[string]interface{} {
	if r.Phone == nil {
		return nil
	}
	updates := map[string]interface{}{}
	setIfPresent(updates, "phone_type", r.Phone.PhoneType)
	setIfPresent(updates, "phone_number", r.Phone.PhoneNumber)
	if len(updates) == 0 {
		return nil
	}
	return updates
}

func setIfPresent(updates map[string]interface{}, column string, value *string) {
	if value != nil {
		updates[column] = *value
	}
}

type ListContactsQuery struct {
	Limit  int
	Offset int
	SortBy string
}

type ContactsListResponse struct {
	Contacts []models.Contact `json:"contacts"`
	Total    int64            `json:"total"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
	SortBy   string           `json:"sortBy"`
}
