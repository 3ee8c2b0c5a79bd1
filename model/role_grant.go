package model

import "time"

// GlobalAdminGrant marks an identity as a global admin. The presence of
// the row is the grant.
type GlobalAdminGrant struct {
	UserID    string    `gorm:"primaryKey;type:varchar(128)" json:"-"`
	GrantedAt time.Time `json:"grantedAt"`
	GrantedBy string    `gorm:"type:varchar(128)" json:"grantedBy"`
}

// TableName specifies the table name for GlobalAdminGrant
func (GlobalAdminGrant) TableName() string {
	return "roles_admin"
}

// UniversityAdminGrant scopes an identity to administering exactly one
// university. At most one row exists per identity.
type UniversityAdminGrant struct {
	UserID       string    `gorm:"primaryKey;type:varchar(128)" json:"-"`
	UniversityID string    `gorm:"type:varchar(64);not null;index" json:"universityId"`
	GrantedAt    time.Time `json:"grantedAt"`
	GrantedBy    string    `gorm:"type:varchar(128)" json:"grantedBy"`
}

// TableName specifies the table name for UniversityAdminGrant
func (UniversityAdminGrant) TableName() string {
	return "roles_university"
}
