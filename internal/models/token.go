package models

import (
	"time"

	"gorm.io/gorm"
)

// TokenPurpose describes what a stored token is for.
type TokenPurpose string

const (
	TokenPurposeRefresh             TokenPurpose = "refresh"
	TokenPurposeAccountVerification TokenPurpose = "account_verification"
)

// Token is a server-side token record (refresh / verification).
// Expired rows are purged by the cleanup job.
type Token struct {
	gorm.Model
	UserID    uint         `gorm:"not null;index" json:"userId"`
	Token     string       `gorm:"unique;not null" json:"-"`
	Purpose   TokenPurpose `gorm:"not null;index" json:"purpose"`
	ExpiresAt time.Time    `gorm:"not null" json:"expiresAt"`
}
