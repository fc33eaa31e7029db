package services

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	SortAlphabetically = "alphabetically"
	SortRecent         = "recent"

	DefaultLimit = 10
	MaxLimit     = 100
)

var (
	ErrContactNotFound     = apperr.NotFound("Contact not found")
	ErrPhoneNumberNotFound = apperr.NotFound("Phone number not found")
	ErrNothingToUpdate     = apperr.Validation("Nothing to update")
)

// Names compare case-insensitively on every driver; sqlite's default collation
// is binary.
var sortOrders = map[string]string{
	SortAlphabetically: "LOWER(first_name) ASC, LOWER(last_name) ASC, created_at ASC",
	SortRecent:         "created_at DESC",
}

type ContactService struct {
	db *gorm.DB
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{db: db}
}

// Create stores a contact and its first phone number in one transaction.
func (s *ContactService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateContactRequest) (*models.Contact, error) {
	req.Trim()
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	contact := models.Contact{
		ID:        uuid.New(),
		UserID:    &userID,
		FirstName: req.Contact.FirstName,
		LastName:  req.Contact.LastName,
		Email:     req.Contact.Email,
		Address:   req.Contact.Address,
	}
	phone := models.PhoneNumber{
		ID:          uuid.New(),
		ContactID:   &contact.ID,
		PhoneType:   req.Phone.PhoneType,
		PhoneNumber: req.Phone.PhoneNumber,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("PhoneNumbers").Create(&contact).Error; err != nil {
			return err
		}
		return tx.Create(&phone).Error
	})
	if err != nil {
		return nil, apperr.Persistence("failed to create contact", err)
	}

	contact.PhoneNumbers = []models.PhoneNumber{phone}
	return &contact, nil
}

// NormalizeListQuery applies defaults and bounds to list parameters.
func NormalizeListQuery(q dto.ListContactsQuery) dto.ListContactsQuery {
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if _, ok := sortOrders[q.SortBy]; !ok {
		q.SortBy = SortAlphabetically
	}
	return q
}

// List returns one page of the user's contacts with their phone numbers, plus
// the total number of contacts the user owns.
func (s *ContactService) List(ctx context.Context, userID uuid.UUID, q dto.ListContactsQuery) ([]models.Contact, int64, error) {
	q = NormalizeListQuery(q)
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Contact{}).Scopes(identity.ForOwner(userID)).Count(&total).Error; err != nil {
		return nil, 0, apperr.Persistence("failed to count contacts", err)
	}

	contacts := []models.Contact{}
	err := db.Scopes(identity.ForOwner(userID)).
		Preload("PhoneNumbers", orderPhones).
		Order(sortOrders[q.SortBy]).
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&contacts).Error
	if err != nil {
		return nil, 0, apperr.Persistence("failed to list contacts", err)
	}
	return contacts, total, nil
}

// Find reports whether the user owns the contact, without loading phones.
func (s *ContactService) Find(ctx context.Context, userID, contactID uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	err := s.db.WithContext(ctx).Scopes(identity.ForOwner(userID)).First(&contact, "id = ?", contactID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContactNotFound
	}
	if err != nil {
		return nil, apperr.Persistence("failed to load contact", err)
	}
	return &contact, nil
}

// Get returns the contact with its phone numbers.
func (s *ContactService) Get(ctx context.Context, userID, contactID uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	err := s.db.WithContext(ctx).Scopes(identity.ForOwner(userID)).
		Preload("PhoneNumbers", orderPhones).
		First(&contact, "id = ?", contactID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContactNotFound
	}
	if err != nil {
		return nil, apperr.Persistence("failed to load contact", err)
	}
	return &contact, nil
}

// Update merges the patch into the contact and its primary phone number. Both
// rows must exist; the two writes commit or roll back together.
func (s *ContactService) Update(ctx context.Context, userID, contactID uuid.UUID, req *dto.UpdateContactRequest) (*models.Contact, error) {
	req.Trim()
	if req.Empty() {
		return nil, ErrNothingToUpdate
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var (
		contact models.Contact
		phone   models.PhoneNumber
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := s.db.WithContext(gctx).Scopes(identity.ForOwner(userID)).First(&contact, "id = ?", contactID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		if err != nil {
			return apperr.Persistence("failed to load contact", err)
		}
		return nil
	})
	g.Go(func() error {
		err := s.db.WithContext(gctx).Where("contact_id = ?", contactID).Order("created_at ASC").First(&phone).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPhoneNumberNotFound
		}
		if err != nil {
			return apperr.Persistence("failed to load phone number", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if updates := req.ContactUpdates(); updates != nil {
			if err := tx.Model(&contact).Updates(updates).Error; err != nil {
				return err
			}
		}
		if updates := req.PhoneUpdates(); updates != nil {
			if err := tx.Model(&phone).Updates(updates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Persistence("failed to update contact", err)
	}

	return s.Get(ctx, userID, contactID)
}

// Delete removes the contact's phone numbers and then the contact itself.
func (s *ContactService) Delete(ctx context.Context, userID, contactID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contact_id = ?", contactID).Delete(&models.PhoneNumber{}).Error; err != nil {
			return err
		}
		result := tx.Scopes(identity.ForOwner(userID)).Where("id = ?", contactID).Delete(&models.Contact{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrContactNotFound
		}
		return nil
	})
	if errors.Is(err, ErrContactNotFound) {
		return err
	}
	if err != nil {
		return apperr.Persistence("failed to delete contact", err)
	}
	return nil
}

func orderPhones(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}
