package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Blocking reports whether a booking in this status reserves its interval
// against new bookings.
func (s BookingStatus) Blocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Terminal reports whether the status admits no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return BookingStatus(s), nil
	}
	return "", fmt.Errorf("invalid booking status %q", s)
}

type Booking struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	Reference  uuid.UUID     `gorm:"type:uuid;uniqueIndex" json:"reference"`
	CustomerID uint          `gorm:"not null;index" json:"customer_id"`
	EmployeeID uint          `gorm:"not null;index:idx_booking_employee_date" json:"employee_id"`
	ProductID  uint          `gorm:"not null" json:"product_id"`
	Date       time.Time     `gorm:"type:date;not null;index:idx_booking_employee_date" json:"date"`
	StartTime  time.Time     `gorm:"not null" json:"start_time"`
	EndTime    time.Time     `gorm:"not null" json:"end_time"`
	Status     BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`

	Customer *UserAccount `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Employee *Employee    `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Product  *Product     `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.Reference == uuid.Nil {
		ref, err := uuid.NewV7()
		if err != nil {
			return err
		}
		b.Reference = ref
	}
	return nil
}
