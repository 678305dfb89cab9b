// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents an account in the Parlor application. A user owns exactly
// one Profile, created alongside the user at signup. Deleting a user does not
// cascade; the profile has to be removed first.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Hash      string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Profile   *Profile  `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}
