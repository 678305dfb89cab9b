package models

import (
	"time"
)

// Comment is either a direct reply to a Post (PostID set) or a reply to
// another Comment (CommentID set); exactly one of the two is non-nil.
// Threading via CommentID is allowed to arbitrary depth.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	ProfileID uint      `gorm:"not null;index" json:"profileId"`
	PostID    *uint     `gorm:"index" json:"postId"`
	CommentID *uint     `gorm:"index" json:"commentId"`
	CreatedAt time.Time `json:"-"`

	Profile *Profile  `gorm:"foreignKey:ProfileID" json:"-"`
	Replies []Comment `gorm:"foreignKey:CommentID" json:"-"`
}

// CommentAuthor is the author fragment embedded in comment list rows. The
// JSON key is capitalized to match the wire format clients already consume.
type CommentAuthor struct {
	Name string `json:"name"`
}

// CommentListItem is the projection returned by the comment list endpoints:
// the comment scalars plus the author's profile name.
type CommentListItem struct {
	ID        uint          `json:"id"`
	Text      string        `json:"text"`
	ProfileID uint          `json:"profileId"`
	Profile   CommentAuthor `json:"Profile"`
}
