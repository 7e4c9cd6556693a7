package models

import (
	"gorm.io/gorm"
)

// User represents a registered principal in the system.
// Profile data (goal, last topic) lives in the document store, see Profile.
type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null" json:"username"`
	Email        string `gorm:"unique;not null" json:"email"`
	Phone        string `json:"phone,omitempty"`
	PasswordHash string `gorm:"not null" json:"-"`
	Admin        bool   `gorm:"default:false" json:"admin"`
}
