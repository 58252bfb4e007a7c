package domain

import (
	"context"
	"time"
)

// User lives in the identity store, separate from the product rows.
type User struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	Username     string `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email        string `gorm:"size:255" json:"email"`
	PasswordHash string `gorm:"size:100;not null" json:"-"`
	Roles        []Role `gorm:"many2many:user_roles" json:"roles"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

type Role struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"uniqueIndex;size:64;not null" json:"name"`
}

func (Role) TableName() string { return "roles" }

// FieldError mirrors the {code, description} error pairs the identity
// collaborator hands back on registration and role operations.
type FieldError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// UserRepository stores users, roles and role memberships.
// Absent users/roles come back as (nil, nil).
type UserRepository interface {
	CreateUser(ctx context.Context, u *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)

	CreateRole(ctx context.Context, r *Role) error
	FindRole(ctx context.Context, name string) (*Role, error)

	AddToRole(ctx context.Context, u *User, r *Role) error
	RolesOf(ctx context.Context, u *User) ([]string, error)
}
