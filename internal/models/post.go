package models

import (
	"time"
)

// Post represents a post owned by a Profile.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProfileID uint      `gorm:"not null;index" json:"profileId"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"createdAt"`

	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"commentsCount"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likesCount"`
	// Liked reports whether the requesting profile has liked the post
	Liked bool `gorm:"-" json:"liked"`

	Profile  *Profile  `gorm:"foreignKey:ProfileID" json:"-"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"-"`
	Likes    []Like    `gorm:"foreignKey:PostID" json:"-"`
}
