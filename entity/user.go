package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	UserID   string `json:"id" gorm:"uniqueIndex"`
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"uniqueIndex"`
	Password string `json:"-"`
	Phone    string `json:"phone,omitempty"`
}

// Preferences live in the user state blob, not in the users table, so a
// guest session can carry them too.
type Preferences struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
	Language      string `json:"language"`
	Currency      string `json:"currency"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Theme:         "system",
		Notifications: true,
		Language:      "en",
		Currency:      "USD",
	}
}
