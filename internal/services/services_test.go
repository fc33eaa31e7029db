package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/database/dbtest"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	tokens   *auth.TokenService
	users    *UserService
	contacts *ContactService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	tokens, err := auth.NewTokenService("test-secret", 90*time.Minute)
	require.NoError(t, err)
	return &fixture{
		db:       db,
		tokens:   tokens,
		users:    NewUserService(db, tokens),
		contacts: NewContactService(db),
	}
}

func (f *fixture) signup(t *testing.T, email string) uuid.UUID {
	t.Helper()
	resp, err := f.users.Signup(context.Background(), &dto.SignupRequest{
		Email: email, Password: "secret1", FirstName: "Test", LastName: "User",
	})
	require.NoError(t, err)
	return resp.ID
}

func newContactRequest(first, phoneType string) *dto.CreateContactRequest {
	return &dto.CreateContactRequest{
		Contact: &dto.ContactFields{FirstName: first, LastName: "Doe", Email: "c@example.com"},
		Phone:   &dto.PhoneFields{PhoneType: phoneType, PhoneNumber: "+15550100"},
	}
}

func strPtr(s string) *string { return &s }

func TestSignupThenLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.users.Signup(ctx, &dto.SignupRequest{
		Email: " Ada@Example.com ", Password: "secret1", FirstName: "Ada", LastName: "Lovelace",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", resp.Email)
	assert.NotEmpty(t, resp.Token)

	userID, err := f.tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.ID.String(), userID)

	var stored models.User
	require.NoError(t, f.db.First(&stored, "id = ?", resp.ID).Error)
	assert.NotEqual(t, "secret1", stored.Password)

	login, err := f.users.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	userID, err = f.tokens.Verify(login.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.ID.String(), userID)
}

func TestSignupValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.signup(t, "taken@example.com")

	cases := map[string]dto.SignupRequest{
		"short password": {Email: "new@example.com", Password: "12345"},
		"bad email":      {Email: "not-an-email", Password: "secret1"},
		"missing email":  {Password: "secret1"},
		"duplicate":      {Email: "taken@example.com", Password: "secret1"},
		"duplicate case": {Email: "TAKEN@example.com", Password: "secret1"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			req := req
			_, err := f.users.Signup(ctx, &req)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestLoginDoesNotRevealWhichPartIsWrong(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.signup(t, "known@example.com")

	_, missing := f.users.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	_, wrong := f.users.Login(ctx, &dto.LoginRequest{Email: "known@example.com", Password: "wrong-pass"})

	assert.ErrorIs(t, missing, apperr.ErrNotFound)
	assert.ErrorIs(t, wrong, apperr.ErrNotFound)
	assert.Equal(t, missing.Error(), wrong.Error())
}

func TestLoginComparesPasswordForUnknownEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.signup(t, "known@example.com")

	var hashes []string
	f.users.checkPassword = func(hash, password string) bool {
		hashes = append(hashes, hash)
		return auth.CheckPassword(hash, password)
	}

	_, err := f.users.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	require.Len(t, hashes, 1)
	assert.Equal(t, unknownUserHash, hashes[0])

	_, err = f.users.Login(ctx, &dto.LoginRequest{Email: "known@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	require.Len(t, hashes, 2)
	assert.NotEqual(t, unknownUserHash, hashes[1])
}

func TestProfile(t *testing.T) {
	f := newFixture(t)
	id := f.signup(t, "me@example.com")

	profile, err := f.users.Profile(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", profile.Email)

	_, err = f.users.Profile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateContactPhoneTypes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.signup(t, "owner@example.com")

	for _, phoneType := range models.PhoneTypes {
		contact, err := f.contacts.Create(ctx, userID, newContactRequest("Valid", phoneType))
		require.NoError(t, err, phoneType)
		require.Len(t, contact.PhoneNumbers, 1)
		assert.Equal(t, phoneType, contact.PhoneNumbers[0].PhoneType)
	}

	for _, phoneType := range []string{"", "pager", "WORK", "fax"} {
		_, err := f.contacts.Create(ctx, userID, newContactRequest("Invalid", phoneType))
		assert.ErrorIs(t, err, apperr.ErrValidation, phoneType)
	}

	var count int64
	f.db.Model(&models.Contact{}).Where("first_name = ?", "Invalid").Count(&count)
	assert.Zero(t, count)
}

func TestCreateContactRequiresBothParts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.signup(t, "owner@example.com")

	_, err := f.contacts.Create(ctx, userID, &dto.CreateContactRequest{
		Contact: &dto.ContactFields{FirstName: "NoPhone"},
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = f.contacts.Create(ctx, userID, newContactRequest("", models.PhoneTypeHome))
	assert.ErrorIs(t, err, apperr.ErrValidation)

	req := newContactRequest("BadEmail", models.PhoneTypeHome)
	req.Contact.Email = "nope"
	_, err = f.contacts.Create(ctx, userID, req)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, apperr.Message(err), "email")
}

func TestBlankNamesAreRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.signup(t, "owner@example.com")

	_, err := f.contacts.Create(ctx, userID, newContactRequest("   ", models.PhoneTypeHome))
	assert.ErrorIs(t, err, apperr.ErrValidation)

	var count int64
	require.NoError(t, f.db.Model(&models.Contact{}).Count(&count).Error)
	assert.Zero(t, count)

	created, err := f.contacts.Create(ctx, userID, newContactRequest("  Padded  ", models.PhoneTypeHome))
	require.NoError(t, err)
	assert.Equal(t, "Padded", created.FirstName)

	_, err = f.contacts.Update(ctx, userID, created.ID, &dto.UpdateContactRequest{
		Contact: &dto.ContactPatch{FirstName: strPtr("  ")},
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	stored, err := f.contacts.Get(ctx, userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Padded", stored.FirstName)
}

func TestCreateContactRollsBackOnPhoneFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.signup(t, "owner@example.com")

	// Drop the phone table so the second insert fails inside the transaction.
	require.NoError(t, f.db.Migrator().DropTable(&models.PhoneNumber{}))

	_, err := f.contacts.Create(ctx, userID, newContactRequest("Orphan", models.PhoneTypeHome))
	require.ErrorIs(t, err, apperr.ErrPersistence)

	var count int64
	require.NoError(t, f.db.Model(&models.Contact{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListPaginatesAndSorts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.signup(t, "owner@example.com")
	other := f.signup(t, "other@example.com")

	names := []string{"Judy", "Alice", "Heidi", "Bob", "Ivan", "Carol", "Grace", "Dave", "Frank", "Eve"}
	for _, name := range names {
		_, err := f.contacts.Create(ctx, userID, newContactRequest(name, models.PhoneTypeMobile))
		require.NoError(t, err)
	}
	_, err := f.contacts.Create(ctx, other, newContactRequest("Mallory", models.PhoneTypeWork))
	require.NoError(t, err)

	contacts, total, err := f.contacts.List(ctx, userID, dto.ListContactsQuery{Limit: 8, Offset: 0, SortBy: SortAlphabetically})
	require.NoError(t, err)
	assert.EqualValues(t, 10, total)
	require.Len(t, contacts, 8)
	assert.Equal(t, "Alice", contacts[0].FirstName)
	for i := 1; i < len(contacts); i++ {
		assert.LessOrEqual(t, contacts[i-1].FirstName, contacts[i].FirstName)
	}
	for _, c := range contacts {
		assert.Len(t, c.PhoneNumbers, 1)
		assert.Equal(t, userID, *c.UserID)
	}

	recent, _, err := f.contacts.List(ctx, userID, dto.ListContactsQuery{Limit: 8, SortBy: SortRecent})
	require.NoError(t, err)
	require.Len(t, recent, 8)
	for i := 1; i < len(recent); i++ {
		assert.False(t, recent[i].CreatedAt.After(recent[i-1].CreatedAt))
	}

	rest, _, err := f.contacts.List(ctx, userID, dto.ListContactsQuery{Limit: 8, Offset: 8})
	require.NoError(t, err)
	assert.Len(t, rest, 2)
}

func TestListSortsAlphabeticallyIgnoringCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.signup(t, "owner@example.com")

	for _, name := range []string{"bob", "Alice", "carol", "Dave"} {
		_, err := f.contacts.Create(ctx, userID, newContactRequest(name, models.PhoneTypeHome))
		require.NoError(t, err)
	}

	contacts, _, err := f.contacts.List(ctx, userID, dto.ListContactsQuery{SortBy: SortAlphabetically})
	require.NoError(t, err)
	names := make([]string, 0, len(contacts))
	for _, c := range contacts {
		names = append(names, c.FirstName)
	}
	assert.Equal(t, []string{"Alice", "bob", "carol", "Dave"}, names)
}

func TestNormalizeListQuery(t *testing.T) {
	q := NormalizeListQuery(dto.ListContactsQuery{})
	assert.Equal(t, dto.ListContactsQuery{Limit: DefaultLimit, Offset: 0, SortBy: SortAlphabetically}, q)

	q = NormalizeListQuery(dto.ListContactsQuery{Limit: 1000, Offset: -3, SortBy: "random"})
	assert.Equal(t, MaxLimit, q.Limit)
	assert.Equal(t, 0, q.Offset)
	assert.Equal(t, SortAlphabetically, q.SortBy)

	assert.Equal(t, SortRecent, NormalizeListQuery(dto.ListContactsQuery{SortBy: SortRecent}).SortBy)
}

func TestUpdateContact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.signup(t, "owner@example.com")
	created, err := f.contacts.Create(ctx, userID, newContactRequest("Old", models.PhoneTypeHome))
	require.NoError(t, err)

	updated, err := f.contacts.Update(ctx, userID, created.ID, &dto.UpdateContactRequest{
		Contact: &dto.ContactPatch{FirstName: strPtr("New")},
		Phone:   &dto.PhonePatch{PhoneType: strPtr(models.PhoneTypeWork)},
	})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.FirstName)
	assert.Equal(t, "Doe", updated.LastName)
	require.Len(t, updated.PhoneNumbers, 1)
	assert.Equal(t, models.PhoneTypeWork, updated.PhoneNumbers[0].PhoneType)
	assert.Equal(t, "+15550100", updated.PhoneNumbers[0].PhoneNumber)
}

func TestUpdateContactErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.signup(t, "owner@example.com")
	intruder := f.signup(t, "intruder@example.com")
	created, err := f.contacts.Create(ctx, userID, newContactRequest("Target", models.PhoneTypeHome))
	require.NoError(t, err)

	for i, req := range []*dto.UpdateContactRequest{
		{},
		{Contact: &dto.ContactPatch{}},
		{Phone: &dto.PhonePatch{}},
	} {
		_, err := f.contacts.Update(ctx, userID, created.ID, req)
		assert.ErrorIs(t, err, ErrNothingToUpdate, fmt.Sprint(i))
	}

	_, err = f.contacts.Update(ctx, userID, created.ID, &dto.UpdateContactRequest{Contact: &dto.ContactPatch{FirstName: strPtr("")}})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = f.contacts.Update(ctx, userID, created.ID, &dto.UpdateContactRequest{Phone: &dto.PhonePatch{PhoneType: strPtr("pager")}})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	patch := &dto.UpdateContactRequest{Contact: &dto.ContactPatch{LastName: strPtr("X")}}
	_, err = f.contacts.Update(ctx, userID, uuid.New(), patch)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = f.contacts.Update(ctx, intruder, created.ID, patch)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, f.db.Where("contact_id = ?", created.ID).Delete(&models.PhoneNumber{}).Error)
	_, err = f.contacts.Update(ctx, userID, created.ID, patch)
	assert.ErrorIs(t, err, ErrPhoneNumberNotFound)
}

func TestDeleteContactRemovesPhones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.signup(t, "owner@example.com")
	intruder := f.signup(t, "intruder@example.com")
	created, err := f.contacts.Create(ctx, userID, newContactRequest("Doomed", models.PhoneTypeOther))
	require.NoError(t, err)

	err = f.contacts.Delete(ctx, intruder, created.ID)
	assert.ErrorIs(t, err, ErrContactNotFound)
	var phones int64
	f.db.Model(&models.PhoneNumber{}).Where("contact_id = ?", created.ID).Count(&phones)
	assert.EqualValues(t, 1, phones)

	require.NoError(t, f.contacts.Delete(ctx, userID, created.ID))

	_, err = f.contacts.Find(ctx, userID, created.ID)
	assert.ErrorIs(t, err, ErrContactNotFound)
	err = f.db.First(&models.PhoneNumber{}, "id = ?", created.PhoneNumbers[0].ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, f.contacts.Delete(ctx, userID, created.ID), ErrContactNotFound)
}
