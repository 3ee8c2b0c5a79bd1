package model

import (
	"time"

	"gorm.io/datatypes"
)

// Profile is the locally owned mirror of an identity-provider account.
// Its ID is the provider uid and never changes after creation.
type Profile struct {
	ID         string            `gorm:"primaryKey;type:varchar(128)" json:"id"`
	Email      string            `gorm:"type:varchar(512);index" json:"email"`
	FullName   string            `gorm:"type:varchar(512)" json:"fullName"`
	Attributes datatypes.JSONMap `gorm:"type:jsonb" json:"-"` // free-form profile fields
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// TableName specifies the table name for Profile
func (Profile) TableName() string {
	return "users"
}

type profileDocument Profile

// MarshalJSON renders the profile as a single flat document.
func (p Profile) MarshalJSON() ([]byte, error) {
	return flattenDocument(profileDocument(p), p.Attributes)
}
