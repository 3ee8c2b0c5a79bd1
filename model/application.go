package model

import "time"

// ApplicationStatus is the review state of an application
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "Pending"
	ApplicationStatusInReview ApplicationStatus = "In Review"
	ApplicationStatusReviewed ApplicationStatus = "Reviewed"
	ApplicationStatusApproved ApplicationStatus = "Approved"
	ApplicationStatusRejected ApplicationStatus = "Rejected"
)

// ApplicationStatuses lists every accepted status, in workflow order.
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusInReview,
	ApplicationStatusReviewed,
	ApplicationStatusApproved,
	ApplicationStatusRejected,
}

// IsValid reports whether s is one of the enumerated statuses.
func (s ApplicationStatus) IsValid() bool {
	for _, status := range ApplicationStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Application is a student's interest in one university/course/trade.
// It is owned by the profile identified by StudentID.
type Application struct {
	ID             string            `gorm:"primaryKey;type:varchar(64)" json:"id"`
	StudentID      string            `gorm:"type:varchar(128);not null;index" json:"studentId"`
	StudentName    string            `gorm:"not null" json:"studentName"`
	Email          string            `gorm:"type:varchar(512);not null" json:"email"`
	Phone          *string           `gorm:"type:varchar(50)" json:"phone"`
	City           *string           `gorm:"type:varchar(255)" json:"city"`
	Message        *string           `gorm:"type:text" json:"message"`
	UniversityID   string            `gorm:"type:varchar(64);not null;index" json:"universityId"`
	UniversityName string            `json:"universityName"`
	CourseName     string            `gorm:"not null" json:"courseName"`
	TradeName      *string           `json:"tradeName"`
	Fees           string            `gorm:"type:varchar(100)" json:"fees"`
	Status         ApplicationStatus `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	SubmittedAt    time.Time         `gorm:"index" json:"submittedAt"`
	UpdatedAt      *time.Time        `gorm:"autoUpdateTime:false" json:"updatedAt,omitempty"`
}

// TableName specifies the table name for Application
func (Application) TableName() string {
	return "applications"
}
