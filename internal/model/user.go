package model

import "time"

// LocalUser is a local profile on this device. PasswordHash is a bcrypt
// digest and never serialized; HasPassword is derived for the UI.
type LocalUser struct {
	ID           string     `gorm:"primarykey" json:"id"`
	Name         string     `json:"name" gorm:"not null"`
	PasswordHash *string    `json:"-"`
	Avatar       string     `json:"avatar" gorm:"not null;default:'avatar-smile'"`
	HasPassword  bool       `json:"has_password" gorm:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

func (LocalUser) TableName() string {
	return "users"
}

// AppState is a generic key-value row; the only key in use is
// "active_user_id".
type AppState struct {
	Key   string `gorm:"primarykey" json:"key"`
	Value string `json:"value" gorm:"not null"`
}

func (AppState) TableName() string {
	return "app_state"
}

// ActiveUserKey is the app_state key holding the currently logged-in
// local user id.
const ActiveUserKey = "active_user_id"
