package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles recognized by the access gate.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User stores system accounts with role-based access.
// Role: "admin" | "user"
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'user'"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
