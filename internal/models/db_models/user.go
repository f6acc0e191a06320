package db_models

import "github.com/google/uuid"

type Role string

const (
	RoleSuperAdmin  Role = "SUPER_ADMIN"
	RoleClientAdmin Role = "CLIENT_ADMIN"
	RoleUser        Role = "USER"
)

type User struct {
	BaseModel
	Email                string     `gorm:"uniqueIndex;not null"`
	PasswordHash         *string    `json:"-"`
	Role                 Role       `gorm:"type:varchar(20);not null;index"`
	ClientID             *uuid.UUID `gorm:"type:uuid;index"`
	PasswordResetToken   *string    `gorm:"index" json:"-"`
	PasswordResetExpires *int64     `json:"-"`
}

// HasPassword is false for invited users that have not set one yet.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// UserWithClient is a user plus its (possibly unloaded) client.
type UserWithClient struct {
	User
	Client Ref[Client]
}
