package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PhoneTypeWork   = "work"
	PhoneTypeHome   = "home"
	PhoneTypeMobile = "mobile"
	PhoneTypeOther  = "other"
)

var PhoneTypes = []string{PhoneTypeWork, PhoneTypeHome, PhoneTypeMobile, PhoneTypeOther}

type PhoneNumber struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ContactID   *uuid.UUID `gorm:"type:uuid;index" json:"contactId"`
	PhoneType   string     `gorm:"not null;size:10;check:chk_phone_numbers_phone_type,phone_type IN ('work','home','mobile','other')" json:"phoneType"`
	PhoneNumber string     `gorm:"not null;size:50" json:"phoneNumber"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (p *PhoneNumber) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
