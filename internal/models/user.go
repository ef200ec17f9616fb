package models

import "github.com/jinzhu/gorm"

// User represents a registered account. Every pantry record is owned by
// exactly one user and all reads and writes are scoped by UserID.
type User struct {
	gorm.Model
	Username     string `json:"username" gorm:"unique_index"`
	Email        string `json:"email" gorm:"unique_index"`
	PasswordHash string `json:"-"`
}

// TableName sets the table name for User
func (User) TableName() string {
	return "users"
}
