package model

import "time"

// NewsletterSubscription is a public newsletter sign-up
type NewsletterSubscription struct {
	ID           string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Email        string    `gorm:"type:varchar(512);not null" json:"email"`
	MobileNumber *string   `gorm:"type:varchar(50)" json:"mobileNumber"`
	Course       *string   `json:"course"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
}

// TableName specifies the table name for NewsletterSubscription
func (NewsletterSubscription) TableName() string {
	return "newsletter_subscriptions"
}
