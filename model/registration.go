package model

import "time"

// Registration is a public lead captured from the enquiry form
type Registration struct {
	ID                 string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	FullName           string    `gorm:"not null" json:"fullName"`
	Email              string    `gorm:"type:varchar(512);not null" json:"email"`
	MobileNumber       string    `gorm:"type:varchar(50);not null" json:"mobileNumber"`
	City               string    `gorm:"type:varchar(255);not null" json:"city"`
	CourseInterestedIn string    `gorm:"not null" json:"courseInterestedIn"`
	OnlineDistance     bool      `gorm:"default:false" json:"onlineDistance"`
	CreatedAt          time.Time `gorm:"index" json:"createdAt"`
}

// TableName specifies the table name for Registration
func (Registration) TableName() string {
	return "registrations"
}
