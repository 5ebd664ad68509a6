package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/dto"
	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/middleware"
	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/models"
	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/service"
	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/timeslot"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/bookings", h.CreateBooking)
	g.GET("/bookings", h.ListBookings)
	g.GET("/bookings/:id", h.GetBooking)
	g.PATCH("/bookings/:id", h.EditBooking)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	slot, err := timeslot.Parse(req.Time)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "time must be HH:MM")
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), actor, service.CreateBookingInput{
		CustomerID: req.CustomerID,
		EmployeeID: req.EmployeeID,
		ProductID:  req.ProductID,
		Date:       date,
		Slot:       slot,
	})
	if err != nil {
		return serviceHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.CreateBookingResponse{
		BookingID: booking.ID,
		Booking:   dto.ToBookingResponse(booking),
	})
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), actor, uint(id))
	if err != nil {
		return serviceHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	statusQuery := c.QueryParam("status")
	if statusQuery == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status query param is required")
	}

	var statuses []models.BookingStatus
	for _, s := range strings.Split(statusQuery, ",") {
		status, err := models.ParseBookingStatus(strings.TrimSpace(s))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid booking status param: "+statusQuery)
		}
		statuses = append(statuses, status)
	}

	bookings, err := h.svc.ListBookings(c.Request().Context(), actor, statuses)
	if err != nil {
		return serviceHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingsListResponse(bookings))
}

func (h *BookingHandler) EditBooking(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	var req dto.BookingPatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Empty() {
		return echo.NewHTTPError(http.StatusBadRequest, "patch must change at least one field")
	}

	patch := service.BookingPatch{
		EmployeeID: req.EmployeeID,
		ProductID:  req.ProductID,
	}
	if req.Status != nil {
		status, err := models.ParseBookingStatus(*req.Status)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		patch.Status = &status
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		patch.Date = &date
	}
	if req.Time != nil {
		slot, err := timeslot.Parse(*req.Time)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "time must be HH:MM")
		}
		patch.Slot = &slot
	}

	booking, err := h.svc.UpdateBooking(c.Request().Context(), actor, uint(id), patch)
	if err != nil {
		return serviceHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}

// serviceHTTPError maps the service's typed errors onto HTTP statuses.
// Anything unrecognised is an infrastructure failure and surfaces as 500.
func serviceHTTPError(err error) error {
	var (
		nfErr   *service.NotFoundError
		slotErr *service.SlotUnavailableError
		trErr   *service.InvalidTransitionError
	)
	switch {
	case errors.As(err, &nfErr):
		return echo.NewHTTPError(http.StatusNotFound, nfErr.Error())
	case errors.Is(err, service.ErrBookingNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.As(err, &slotErr):
		return echo.NewHTTPError(http.StatusConflict, slotErr.Error())
	case errors.As(err, &trErr):
		return echo.NewHTTPError(http.StatusConflict, trErr.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
