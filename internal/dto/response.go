package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/models"
	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/service"
)

type BookingResponse struct {
	ID         uint                 `json:"id"`
	Reference  uuid.UUID            `json:"reference"`
	CustomerID uint                 `json:"customer_id"`
	EmployeeID uint                 `json:"employee_id"`
	ProductID  uint                 `json:"product_id"`
	Date       string               `json:"date"`
	Time       string               `json:"time"`
	EndTime    string               `json:"end_time"`
	Status     models.BookingStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
}

type BookingsListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

type CreateBookingResponse struct {
	BookingID uint            `json:"booking_id"`
	Booking   BookingResponse `json:"booking"`
}

type ProductsListResponse struct {
	Products []models.Product `json:"products"`
}

type StaffListResponse struct {
	Staff []models.Employee `json:"staff"`
}

type AvailabilityResponse struct {
	Days []service.DayAvailability `json:"days"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		Reference:  b.Reference,
		CustomerID: b.CustomerID,
		EmployeeID: b.EmployeeID,
		ProductID:  b.ProductID,
		Date:       b.Date.UTC().Format("2006-01-02"),
		Time:       b.StartTime.UTC().Format("15:04"),
		EndTime:    b.EndTime.UTC().Format("15:04"),
		Status:     b.Status,
		CreatedAt:  b.CreatedAt,
	}
}

func ToBookingsListResponse(bookings []models.Booking) BookingsListResponse {
	out := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = ToBookingResponse(&b)
	}
	return BookingsListResponse{Bookings: out}
}
