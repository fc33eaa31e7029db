package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact belongs to a user. Deleting the user leaves the row with a NULL
// user_id rather than cascading.
type Contact struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       *uuid.UUID    `gorm:"type:uuid;index" json:"userId"`
	FirstName    string        `gorm:"not null;size:255" json:"firstName"`
	LastName     string        `gorm:"size:255" json:"lastName"`
	Email        string        `gorm:"size:255" json:"email"`
	Address      string        `gorm:"size:500" json:"address"`
	CreatedAt    time.Time     `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
	PhoneNumbers []PhoneNumber `gorm:"foreignKey:ContactID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"phoneNumbers"`
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
