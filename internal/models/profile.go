package models

// Profile is the public identity tied 1:1 to a User. Every ownership check on
// posts and comments resolves through the profile's UserID.
type Profile struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"not null;uniqueIndex" json:"userId"`
	Name    string `gorm:"not null" json:"name"`
	About   string `json:"about"`
	Website string `json:"website"`
}
