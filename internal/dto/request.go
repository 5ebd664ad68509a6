package dto

type CreateBookingRequest struct {
	CustomerID uint   `json:"customer_id" validate:"required"`
	EmployeeID uint   `json:"employee_id" validate:"required"`
	ProductID  uint   `json:"product_id" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Time       string `json:"time" validate:"required,datetime=15:04"`
}

// BookingPatchRequest edits an existing booking: a status transition, a
// reschedule, or both. Absent fields are untouched.
type BookingPatchRequest struct {
	Status     *string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	Date       *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Time       *string `json:"time,omitempty" validate:"omitempty,datetime=15:04"`
	EmployeeID *uint   `json:"employee_id,omitempty"`
	ProductID  *uint   `json:"product_id,omitempty"`
}

func (r BookingPatchRequest) Empty() bool {
	return r.Status == nil && r.Date == nil && r.Time == nil && r.EmployeeID == nil && r.ProductID == nil
}

type CreateProductRequest struct {
	Name            string  `json:"name" validate:"required"`
	Price           float64 `json:"price" validate:"gte=0"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,gt=0"`
}

type CreateScheduleRequest struct {
	EmployeeID uint   `json:"employee_id" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	ShiftStart string `json:"shift_start" validate:"omitempty,datetime=15:04"`
	ShiftEnd   string `json:"shift_end" validate:"omitempty,datetime=15:04"`
}
