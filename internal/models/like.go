package models

import (
	"time"
)

// Like records a profile liking a post.
// The combination of PostID and ProfileID must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_profile" json:"postId"`
	ProfileID uint      `gorm:"not null;uniqueIndex:idx_post_profile" json:"profileId"`
	CreatedAt time.Time `json:"createdAt"`
}
