package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Login answers "no such email" and "wrong password" identically so callers
// cannot probe which addresses are registered.
var (
	ErrEmailTaken         = apperr.Validation("Email is already registered")
	ErrInvalidCredentials = apperr.NotFound("The email & password do not match")
	ErrUserNotFound       = apperr.NotFound("User not found")
)

// unknownUserHash is compared against when the email is not registered, so
// both login failures pay for one bcrypt comparison.
var unknownUserHash = mustHash("unknown-user-placeholder")

type UserService struct {
	db            *gorm.DB
	tokens        *auth.TokenService
	checkPassword func(hash, password string) bool
}

func NewUserService(db *gorm.DB, tokens *auth.TokenService) *UserService {
	return &UserService{db: db, tokens: tokens, checkPassword: auth.CheckPassword}
}

func (s *UserService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	req.Email = normalizeEmail(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var existing models.User
	err := db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Persistence("failed to look up user", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Persistence("failed to hash password", err)
	}

	user := models.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, apperr.Persistence("failed to create user", err)
	}

	token, err := s.tokens.Issue(user.ID.String())
	if err != nil {
		return nil, apperr.Persistence("failed to issue token", err)
	}

	return &dto.SignupResponse{
		Token:     token,
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Message:   "Account successfully created.",
	}, nil
}

func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.checkPassword(unknownUserHash, req.Password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperr.Persistence("failed to look up user", err)
	}

	if !s.checkPassword(user.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID.String())
	if err != nil {
		return nil, apperr.Persistence("failed to issue token", err)
	}
	return &dto.LoginResponse{Token: token}, nil
}

// Profile returns the public fields of a user.
func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, apperr.Persistence("failed to load user", err)
	}
	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

func mustHash(password string) string {
	hash, err := auth.HashPassword(password)
	if err != nil {
		panic(err)
	}
	return hash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
