package models

import "time"

// Employee is a staff member customers can be booked with. UserID links the
// employee to the account they sign in with, which is how "assigned employee"
// authorisation checks are resolved.
type Employee struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
