package db_models

import "github.com/google/uuid"

type Client struct {
	BaseModel
	Name         string    `gorm:"not null"`
	AdminUserID  uuid.UUID `gorm:"type:uuid;index"`
	LicenseCount int       `gorm:"not null;default:0;check:chk_clients_license_count,license_count >= 0"`
}

// ClientCourse is a course subscription of a client.
type ClientCourse struct {
	ClientID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourseID  uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt int64     `gorm:"autoCreateTime"`
}

// LicenseUsage is the capacity/consumption pair of one client.
type LicenseUsage struct {
	Total int   `json:"total"`
	Used  int64 `json:"used"`
}

// Free never reports below zero even if capacity was exceeded.
func (u LicenseUsage) Free() int64 {
	free := int64(u.Total) - u.Used
	if free < 0 {
		return 0
	}
	return free
}
