package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account. The password column holds the
// bcrypt digest and never serializes to JSON.
type User struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Email             string         `gorm:"size:254;not null;uniqueIndex" json:"email"`
	Username          string         `gorm:"size:20;not null;uniqueIndex" json:"username"`
	Password          string         `gorm:"not null" json:"-"`
	ProfilePictureURL string         `json:"profile_picture_url,omitempty"`
	Posts             []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// PublicView is the identity payload returned by register and login.
type PublicView struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Public returns the minimal identity view of the user.
func (u *User) Public() PublicView {
	return PublicView{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
	}
}
