package models

import "time"

type UserAccount struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	FullName  string    `gorm:"not null" json:"full_name"`
	Admin     bool      `gorm:"not null;default:false" json:"admin"`
	Worker    bool      `gorm:"not null;default:false" json:"worker"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
