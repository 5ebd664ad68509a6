package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/dto"
	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/middleware"
	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/models"
	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/repository"
	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/service"
)

type StaffHandler struct {
	employees repository.EmployeeRepository
	schedules repository.ScheduleRepository
	svc       service.BookingService
}

func NewStaffHandler(employees repository.EmployeeRepository, schedules repository.ScheduleRepository, svc service.BookingService) *StaffHandler {
	return &StaffHandler{employees: employees, schedules: schedules, svc: svc}
}

func (h *StaffHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/staff", h.ListStaff)
	g.GET("/staff/:id/times", h.GetAvailability)
	g.POST("/schedules", h.CreateSchedule)
}

func (h *StaffHandler) ListStaff(c echo.Context) error {
	staff, err := h.employees.FindAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.StaffListResponse{Staff: staff})
}

// GetAvailability returns, for each rostered day within the booking horizon,
// the permitted start times still free for the employee.
func (h *StaffHandler) GetAvailability(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid employee id")
	}

	days, err := h.svc.Availability(c.Request().Context(), uint(id))
	if err != nil {
		return serviceHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.AvailabilityResponse{Days: days})
}

func (h *StaffHandler) CreateSchedule(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	if !actor.Admin {
		return echo.NewHTTPError(http.StatusForbidden, "only admins may roster employees")
	}

	var req dto.CreateScheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	if _, err := h.employees.FindByID(c.Request().Context(), req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "employee not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	schedule := &models.Schedule{
		EmployeeID: req.EmployeeID,
		Date:       date,
		ShiftStart: req.ShiftStart,
		ShiftEnd:   req.ShiftEnd,
	}
	if err := h.schedules.Create(c.Request().Context(), schedule); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, schedule)
}
