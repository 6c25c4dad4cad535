package model

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;unique;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"type:enum('user','admin');default:'user'" json:"role"`
	// TotalPoints is the user's cross-category standing. It changes only when
	// an attempt is finalized (credit) or deleted (refund).
	TotalPoints int       `gorm:"default:0" json:"totalPoints"`
	Avatar      string    `gorm:"size:255" json:"avatar"`
	LastLogin   time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// RefreshToken holds the single refresh token issued to a user; login
// overwrites it, logout deletes it.
type RefreshToken struct {
	BaseModel
	UserID uint   `gorm:"uniqueIndex;not null" json:"userId"`
	Token  string `gorm:"size:512;not null" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
