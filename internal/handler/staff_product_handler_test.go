package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/dto"
	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/middleware"
	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/models"
	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/service"
)

// --- Mock repositories ---

type mockProductRepo struct {
	createFn   func(ctx context.Context, product *models.Product) error
	findByIDFn func(ctx context.Context, id uint) (*models.Product, error)
	findAllFn  func(ctx context.Context) ([]models.Product, error)
}

func (m *mockProductRepo) Create(ctx context.Context, product *models.Product) error {
	return m.createFn(ctx, product)
}
func (m *mockProductRepo) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockProductRepo) FindAll(ctx context.Context) ([]models.Product, error) {
	return m.findAllFn(ctx)
}

type mockEmployeeRepo struct {
	findByIDFn func(ctx context.Context, id uint) (*models.Employee, error)
	findAllFn  func(ctx context.Context) ([]models.Employee, error)
}

func (m *mockEmployeeRepo) FindByID(ctx context.Context, id uint) (*models.Employee, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockEmployeeRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Employee, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockEmployeeRepo) FindAll(ctx context.Context) ([]models.Employee, error) {
	return m.findAllFn(ctx)
}

type mockScheduleRepo struct {
	createFn           func(ctx context.Context, schedule *models.Schedule) error
	findByEmpAndDateFn func(ctx context.Context, employeeID uint, date time.Time) (*models.Schedule, error)
}

func (m *mockScheduleRepo) Create(ctx context.Context, schedule *models.Schedule) error {
	return m.createFn(ctx, schedule)
}
func (m *mockScheduleRepo) FindByEmployeeAndDate(ctx context.Context, employeeID uint, date time.Time) (*models.Schedule, error) {
	return m.findByEmpAndDateFn(ctx, employeeID, date)
}
func (m *mockScheduleRepo) FindByEmployeeAndDateTx(ctx context.Context, tx *gorm.DB, employeeID uint, date time.Time) (*models.Schedule, error) {
	return m.findByEmpAndDateFn(ctx, employeeID, date)
}

// --- ProductHandler ---

func TestGetProduct_Handler_Success(t *testing.T) {
	repo := &mockProductRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Product, error) {
			return &models.Product{ID: id, Name: "Haircut", DurationMinutes: 60}, nil
		},
	}

	c, rec := newContext(t, http.MethodGet, "/api/products/3", "")
	c.SetParamNames("id")
	c.SetParamValues("3")

	h := NewProductHandler(repo)
	require.NoError(t, h.GetProduct(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetProduct_Handler_NotFound(t *testing.T) {
	repo := &mockProductRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Product, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	c, _ := newContext(t, http.MethodGet, "/api/products/404", "")
	c.SetParamNames("id")
	c.SetParamValues("404")

	h := NewProductHandler(repo)
	err := h.GetProduct(c)

	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

// A storage failure is not a missing product.
func TestGetProduct_Handler_RepoFailure(t *testing.T) {
	repo := &mockProductRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Product, error) {
			return nil, assert.AnError
		},
	}

	c, _ := newContext(t, http.MethodGet, "/api/products/3", "")
	c.SetParamNames("id")
	c.SetParamValues("3")

	h := NewProductHandler(repo)
	err := h.GetProduct(c)

	assert.Equal(t, http.StatusInternalServerError, httpStatus(t, err))
}

func TestCreateProduct_Handler_AdminOnly(t *testing.T) {
	c, _ := newContext(t, http.MethodPost, "/api/products", `{"name":"Haircut","price":40,"duration_minutes":60}`)

	h := NewProductHandler(&mockProductRepo{})
	err := h.CreateProduct(c)

	assert.Equal(t, http.StatusForbidden, httpStatus(t, err))
}

// --- StaffHandler ---

func newAdminContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	c, rec := newContext(t, method, target, body)
	middleware.SetActor(c, service.Actor{UserID: 1, Admin: true})
	return c, rec
}

func TestListStaff_Handler_Success(t *testing.T) {
	employees := &mockEmployeeRepo{
		findAllFn: func(ctx context.Context) ([]models.Employee, error) {
			return []models.Employee{{ID: 5, Name: "Bob"}}, nil
		},
	}

	c, rec := newContext(t, http.MethodGet, "/api/staff", "")

	h := NewStaffHandler(employees, &mockScheduleRepo{}, nil)
	require.NoError(t, h.ListStaff(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.StaffListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Staff, 1)
	assert.Equal(t, "Bob", resp.Staff[0].Name)
}

func TestGetAvailability_Handler_Success(t *testing.T) {
	svc := &mockBookingService{
		availabilityFn: func(ctx context.Context, employeeID uint) ([]service.DayAvailability, error) {
			assert.Equal(t, uint(5), employeeID)
			return []service.DayAvailability{{Date: "2026-09-02", Times: []string{"09:00", "09:30"}}}, nil
		},
	}

	c, rec := newContext(t, http.MethodGet, "/api/staff/5/times", "")
	c.SetParamNames("id")
	c.SetParamValues("5")

	h := NewStaffHandler(&mockEmployeeRepo{}, &mockScheduleRepo{}, svc)
	require.NoError(t, h.GetAvailability(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Days, 1)
	assert.Equal(t, []string{"09:00", "09:30"}, resp.Days[0].Times)
}

func TestGetAvailability_Handler_UnknownEmployee(t *testing.T) {
	svc := &mockBookingService{
		availabilityFn: func(ctx context.Context, employeeID uint) ([]service.DayAvailability, error) {
			return nil, &service.NotFoundError{Entity: "employee", ID: employeeID}
		},
	}

	c, _ := newContext(t, http.MethodGet, "/api/staff/404/times", "")
	c.SetParamNames("id")
	c.SetParamValues("404")

	h := NewStaffHandler(&mockEmployeeRepo{}, &mockScheduleRepo{}, svc)
	err := h.GetAvailability(c)

	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

func TestCreateSchedule_Handler_Success(t *testing.T) {
	employees := &mockEmployeeRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Employee, error) {
			return &models.Employee{ID: id, Name: "Bob"}, nil
		},
	}
	schedules := &mockScheduleRepo{
		createFn: func(ctx context.Context, schedule *models.Schedule) error {
			schedule.ID = 1
			return nil
		},
	}

	c, rec := newAdminContext(t, http.MethodPost, "/api/schedules", `{"employee_id":5,"date":"2026-09-02"}`)

	h := NewStaffHandler(employees, schedules, nil)
	require.NoError(t, h.CreateSchedule(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateSchedule_Handler_EmployeeNotFound(t *testing.T) {
	employees := &mockEmployeeRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	c, _ := newAdminContext(t, http.MethodPost, "/api/schedules", `{"employee_id":404,"date":"2026-09-02"}`)

	h := NewStaffHandler(employees, &mockScheduleRepo{}, nil)
	err := h.CreateSchedule(c)

	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

// A failed employee lookup is a server error, not a missing employee.
func TestCreateSchedule_Handler_LookupFailure(t *testing.T) {
	employees := &mockEmployeeRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Employee, error) {
			return nil, assert.AnError
		},
	}

	c, _ := newAdminContext(t, http.MethodPost, "/api/schedules", `{"employee_id":5,"date":"2026-09-02"}`)

	h := NewStaffHandler(employees, &mockScheduleRepo{}, nil)
	err := h.CreateSchedule(c)

	assert.Equal(t, http.StatusInternalServerError, httpStatus(t, err))
}

func TestCreateSchedule_Handler_AdminOnly(t *testing.T) {
	c, _ := newContext(t, http.MethodPost, "/api/schedules", `{"employee_id":5,"date":"2026-09-02"}`)

	h := NewStaffHandler(&mockEmployeeRepo{}, &mockScheduleRepo{}, nil)
	err := h.CreateSchedule(c)

	assert.Equal(t, http.StatusForbidden, httpStatus(t, err))
}
