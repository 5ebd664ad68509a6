package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/models"
	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/repository"
	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/timeslot"
	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/pkg/rabbitmq"
)

type BookingService interface {
	CreateBooking(ctx context.Context, actor Actor, in CreateBookingInput) (*models.Booking, error)
	UpdateBooking(ctx context.Context, actor Actor, bookingID uint, patch BookingPatch) (*models.Booking, error)
	GetBooking(ctx context.Context, actor Actor, bookingID uint) (*models.Booking, error)
	ListBookings(ctx context.Context, actor Actor, statuses []models.BookingStatus) ([]models.Booking, error)
	Availability(ctx context.Context, employeeID uint) ([]DayAvailability, error)
}

type CreateBookingInput struct {
	CustomerID uint
	EmployeeID uint
	ProductID  uint
	Date       time.Time
	Slot       timeslot.Slot
}

// BookingPatch carries a requested status transition and/or reschedule. Nil
// fields are left unchanged.
type BookingPatch struct {
	Status     *models.BookingStatus
	Date       *time.Time
	Slot       *timeslot.Slot
	EmployeeID *uint
	ProductID  *uint
}

// DayAvailability lists the free permitted start times on one rostered day.
type DayAvailability struct {
	Date  string   `json:"date"`
	Times []string `json:"times"`
}

// allowedTransitions is the full status state machine. Anything absent here,
// including self-transitions and transitions out of terminal states, is
// rejected.
var allowedTransitions = map[models.BookingStatus]map[models.BookingStatus]bool{
	models.StatusPending: {
		models.StatusConfirmed: true,
		models.StatusCancelled: true,
	},
	models.StatusConfirmed: {
		models.StatusCancelled: true,
		models.StatusCompleted: true,
	},
}

func transitionAllowed(from, to models.BookingStatus) bool {
	return allowedTransitions[from][to]
}

type BookingServiceDeps struct {
	Bookings  repository.BookingRepository
	Users     repository.UserRepository
	Employees repository.EmployeeRepository
	Products  repository.ProductRepository
	Schedules repository.ScheduleRepository

	Catalog     *timeslot.Catalog
	Publisher   *rabbitmq.Publisher
	Clock       Clock
	HorizonDays int
	Logger      *zap.Logger
}

type bookingService struct {
	bookings  repository.BookingRepository
	users     repository.UserRepository
	employees repository.EmployeeRepository
	products  repository.ProductRepository
	schedules repository.ScheduleRepository

	catalog     *timeslot.Catalog
	publisher   *rabbitmq.Publisher
	clock       Clock
	horizonDays int
	log         *zap.Logger
}

func NewBookingService(deps BookingServiceDeps) BookingService {
	if deps.Clock == nil {
		deps.Clock = systemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &bookingService{
		bookings:    deps.Bookings,
		users:       deps.Users,
		employees:   deps.Employees,
		products:    deps.Products,
		schedules:   deps.Schedules,
		catalog:     deps.Catalog,
		publisher:   deps.Publisher,
		clock:       deps.Clock,
		horizonDays: deps.HorizonDays,
		log:         deps.Logger,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, actor Actor, in CreateBookingInput) (*models.Booking, error) {
	booking, err := s.createBooking(ctx, actor, in)
	if err != nil {
		s.logRejection("create", actor, err)
		return nil, err
	}

	s.log.Info("booking created",
		zap.Uint("booking_id", booking.ID),
		zap.Uint("customer_id", booking.CustomerID),
		zap.Uint("employee_id", booking.EmployeeID),
		zap.Time("start_time", booking.StartTime),
	)
	s.publish("booking.created", booking)
	return booking, nil
}

func (s *bookingService) createBooking(ctx context.Context, actor Actor, in CreateBookingInput) (*models.Booking, error) {
	// 1. Referenced entities must exist.
	customer, err := s.lookupUser(ctx, "customer", in.CustomerID)
	if err != nil {
		return nil, err
	}
	employee, err := s.lookupEmployee(ctx, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	product, err := s.lookupProduct(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	// 2. Only the customer themselves, or an admin, may book.
	if !actor.CanActFor(customer.ID) {
		return nil, ErrForbidden
	}

	if product.DurationMinutes <= 0 {
		return nil, slotUnavailable(ReasonBadDuration)
	}

	now := s.clock.Now().UTC()
	date := in.Date.UTC().Truncate(24 * time.Hour)
	start := in.Slot.At(date)
	end := start.Add(time.Duration(product.DurationMinutes) * time.Minute)

	var booking *models.Booking
	err = s.bookings.InTransaction(ctx, func(tx *gorm.DB) error {
		// Serialize validate-then-commit per employee.
		if _, err := s.employees.FindByIDForUpdate(ctx, tx, employee.ID); err != nil {
			return fmt.Errorf("lock employee %d: %w", employee.ID, err)
		}

		// 3-7. Slot rules, in fixed order.
		if err := s.checkSlot(ctx, tx, employee.ID, date, in.Slot, start, end, now, 0); err != nil {
			return err
		}

		booking = &models.Booking{
			CustomerID: customer.ID,
			EmployeeID: employee.ID,
			ProductID:  product.ID,
			Date:       date,
			StartTime:  start,
			EndTime:    end,
			Status:     models.StatusPending,
		}
		if err := s.bookings.Create(ctx, tx, booking); err != nil {
			if errors.Is(err, repository.ErrOverlap) {
				return slotUnavailable(ReasonConflict)
			}
			return fmt.Errorf("persist booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// checkSlot evaluates the slot rules for (employeeID, date, slot) in the
// prescribed order so that the first failing rule determines the internal
// reason. excludeBookingID removes a booking being rescheduled from the
// conflict set.
func (s *bookingService) checkSlot(ctx context.Context, tx *gorm.DB, employeeID uint, date time.Time, slot timeslot.Slot, start, end, now time.Time, excludeBookingID uint) error {
	if _, err := s.schedules.FindByEmployeeAndDateTx(ctx, tx, employeeID, date); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return slotUnavailable(ReasonNoSchedule)
		}
		return fmt.Errorf("lookup schedule for employee %d: %w", employeeID, err)
	}

	if !s.withinHorizon(now, date) {
		return slotUnavailable(ReasonOutsideHorizon)
	}

	if !s.catalog.Contains(slot) {
		return slotUnavailable(ReasonSlotNotPermitted)
	}

	if !start.After(now) {
		return slotUnavailable(ReasonStartInPast)
	}

	existing, err := s.bookings.FindBlockingByEmployeeAndDate(ctx, tx, employeeID, date)
	if err != nil {
		return fmt.Errorf("list blocking bookings for employee %d: %w", employeeID, err)
	}
	if hasConflict(existing, start, end, excludeBookingID) {
		return slotUnavailable(ReasonConflict)
	}
	return nil
}

// withinHorizon accepts dates from today (inclusive) up to, but excluding, the
// day exactly horizonDays ahead.
func (s *bookingService) withinHorizon(now, date time.Time) bool {
	today := now.Truncate(24 * time.Hour)
	days := int(date.Sub(today).Hours() / 24)
	return days >= 0 && days < s.horizonDays
}

func (s *bookingService) UpdateBooking(ctx context.Context, actor Actor, bookingID uint, patch BookingPatch) (*models.Booking, error) {
	booking, err := s.updateBooking(ctx, actor, bookingID, patch)
	if err != nil {
		s.logRejection("update", actor, err)
		return nil, err
	}

	s.log.Info("booking updated",
		zap.Uint("booking_id", booking.ID),
		zap.String("status", string(booking.Status)),
	)
	if patch.Status != nil {
		s.publish("booking."+string(*patch.Status), booking)
	} else {
		s.publish("booking.rescheduled", booking)
	}
	return booking, nil
}

func (s *bookingService) updateBooking(ctx context.Context, actor Actor, bookingID uint, patch BookingPatch) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("lookup booking %d: %w", bookingID, err)
	}

	assigned, err := s.employees.FindByID(ctx, booking.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("lookup assigned employee %d: %w", booking.EmployeeID, err)
	}
	isCustomer := actor.UserID == booking.CustomerID
	isAssigned := actor.Worker && assigned.UserID == actor.UserID

	reschedule := patch.Date != nil || patch.Slot != nil || patch.EmployeeID != nil || patch.ProductID != nil

	// Transition legality before authorisation: an unreachable transition is
	// invalid regardless of who asks.
	if patch.Status != nil && !transitionAllowed(booking.Status, *patch.Status) {
		return nil, &InvalidTransitionError{From: booking.Status, To: *patch.Status}
	}
	if reschedule && booking.Status.Terminal() {
		return nil, &InvalidTransitionError{From: booking.Status, To: booking.Status}
	}

	if patch.Status != nil {
		switch *patch.Status {
		case models.StatusCancelled:
			if !actor.Admin && !isCustomer && !isAssigned {
				return nil, ErrForbidden
			}
		case models.StatusConfirmed, models.StatusCompleted:
			if !actor.Admin && !isAssigned {
				return nil, ErrForbidden
			}
		}
	}
	if reschedule && !actor.Admin && !isCustomer && !isAssigned {
		return nil, ErrForbidden
	}

	if patch.Status == nil && !reschedule {
		return booking, nil
	}

	newEmployeeID := booking.EmployeeID
	newProductID := booking.ProductID
	var (
		date  time.Time
		slot  timeslot.Slot
		start time.Time
		end   time.Time
		now   time.Time
	)
	if reschedule {
		if patch.EmployeeID != nil {
			if _, err := s.lookupEmployee(ctx, *patch.EmployeeID); err != nil {
				return nil, err
			}
			newEmployeeID = *patch.EmployeeID
		}
		if patch.ProductID != nil {
			newProductID = *patch.ProductID
		}
		product, err := s.lookupProduct(ctx, newProductID)
		if err != nil {
			return nil, err
		}
		if product.DurationMinutes <= 0 {
			return nil, slotUnavailable(ReasonBadDuration)
		}

		date = booking.Date.UTC()
		if patch.Date != nil {
			date = patch.Date.UTC().Truncate(24 * time.Hour)
		}
		if patch.Slot != nil {
			slot = *patch.Slot
		} else {
			slot = timeslot.Slot(booking.StartTime.UTC().Hour()*60 + booking.StartTime.UTC().Minute())
		}

		now = s.clock.Now().UTC()
		start = slot.At(date)
		end = start.Add(time.Duration(product.DurationMinutes) * time.Minute)
	}

	err = s.bookings.InTransaction(ctx, func(tx *gorm.DB) error {
		// Lock in ascending order so a simultaneous move in the opposite
		// direction cannot deadlock.
		for _, id := range lockOrder(booking.EmployeeID, newEmployeeID) {
			if _, err := s.employees.FindByIDForUpdate(ctx, tx, id); err != nil {
				return fmt.Errorf("lock employee %d: %w", id, err)
			}
		}

		if reschedule {
			// The old interval stays blocking until the new one has passed
			// validation; both happen inside this transaction.
			if err := s.checkSlot(ctx, tx, newEmployeeID, date, slot, start, end, now, booking.ID); err != nil {
				return err
			}
			booking.EmployeeID = newEmployeeID
			booking.ProductID = newProductID
			booking.Date = date
			booking.StartTime = start
			booking.EndTime = end
		}
		if patch.Status != nil {
			booking.Status = *patch.Status
		}

		if err := s.bookings.Save(ctx, tx, booking); err != nil {
			if errors.Is(err, repository.ErrOverlap) {
				return slotUnavailable(ReasonConflict)
			}
			return fmt.Errorf("persist booking %d: %w", booking.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, actor Actor, bookingID uint) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("lookup booking %d: %w", bookingID, err)
	}

	if actor.Admin || actor.UserID == booking.CustomerID {
		return booking, nil
	}
	if actor.Worker {
		assigned, err := s.employees.FindByID(ctx, booking.EmployeeID)
		if err != nil {
			return nil, fmt.Errorf("lookup assigned employee %d: %w", booking.EmployeeID, err)
		}
		if assigned.UserID == actor.UserID {
			return booking, nil
		}
	}
	return nil, ErrForbidden
}

func (s *bookingService) ListBookings(ctx context.Context, actor Actor, statuses []models.BookingStatus) ([]models.Booking, error) {
	if len(statuses) == 0 {
		statuses = []models.BookingStatus{
			models.StatusPending, models.StatusConfirmed,
			models.StatusCancelled, models.StatusCompleted,
		}
	}

	switch {
	case actor.Admin:
		return s.bookings.FindAllByStatuses(ctx, statuses)
	case actor.Worker:
		return s.bookings.FindByEmployeeUserAndStatuses(ctx, actor.UserID, statuses)
	default:
		return s.bookings.FindByCustomerAndStatuses(ctx, actor.UserID, statuses)
	}
}

// Availability lists, per rostered day inside the booking horizon, the
// catalog slots that are still free for the employee. The probe interval is
// one slot wide; a product's real duration is validated at booking time.
func (s *bookingService) Availability(ctx context.Context, employeeID uint) ([]DayAvailability, error) {
	if _, err := s.lookupEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	out := make([]DayAvailability, 0, s.horizonDays)
	for d := 0; d < s.horizonDays; d++ {
		date := today.AddDate(0, 0, d)

		if _, err := s.schedules.FindByEmployeeAndDate(ctx, employeeID, date); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, fmt.Errorf("lookup schedule for employee %d: %w", employeeID, err)
		}

		existing, err := s.bookings.FindBlockingByEmployeeAndDate(ctx, nil, employeeID, date)
		if err != nil {
			return nil, fmt.Errorf("list blocking bookings for employee %d: %w", employeeID, err)
		}

		times := make([]string, 0)
		for _, slot := range s.catalog.Slots() {
			start := slot.At(date)
			if !start.After(now) {
				continue
			}
			if hasConflict(existing, start, start.Add(s.catalog.Width()), 0) {
				continue
			}
			times = append(times, slot.String())
		}
		if len(times) > 0 {
			out = append(out, DayAvailability{Date: date.Format("2006-01-02"), Times: times})
		}
	}
	return out, nil
}

func (s *bookingService) lookupUser(ctx context.Context, role string, id uint) (*models.UserAccount, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: role, ID: id}
		}
		return nil, fmt.Errorf("lookup %s %d: %w", role, id, err)
	}
	return user, nil
}

func (s *bookingService) lookupEmployee(ctx context.Context, id uint) (*models.Employee, error) {
	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "employee", ID: id}
		}
		return nil, fmt.Errorf("lookup employee %d: %w", id, err)
	}
	return employee, nil
}

func (s *bookingService) lookupProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "product", ID: id}
		}
		return nil, fmt.Errorf("lookup product %d: %w", id, err)
	}
	return product, nil
}

func (s *bookingService) publish(routingKey string, booking *models.Booking) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, booking); err != nil {
		s.log.Warn("failed to publish booking event",
			zap.String("routing_key", routingKey),
			zap.Uint("booking_id", booking.ID),
			zap.Error(err),
		)
	}
}

// logRejection records every rule violation with its internal reason; the
// caller still receives the typed error, nothing is swallowed.
func (s *bookingService) logRejection(op string, actor Actor, err error) {
	var (
		slotErr *SlotUnavailableError
		nfErr   *NotFoundError
		trErr   *InvalidTransitionError
	)
	switch {
	case errors.As(err, &slotErr):
		s.log.Info("booking rejected",
			zap.String("op", op),
			zap.String("reason", string(slotErr.Reason)),
			zap.Uint("user_id", actor.UserID),
		)
	case errors.As(err, &nfErr):
		s.log.Info("booking rejected",
			zap.String("op", op),
			zap.String("reason", "not_found"),
			zap.String("entity", nfErr.Entity),
			zap.Uint("entity_id", nfErr.ID),
		)
	case errors.As(err, &trErr):
		s.log.Info("booking rejected",
			zap.String("op", op),
			zap.String("reason", "invalid_transition"),
			zap.String("from", string(trErr.From)),
			zap.String("to", string(trErr.To)),
		)
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrBookingNotFound):
		s.log.Info("booking rejected",
			zap.String("op", op),
			zap.String("reason", "forbidden_or_missing"),
			zap.Uint("user_id", actor.UserID),
		)
	default:
		s.log.Error("booking operation failed",
			zap.String("op", op),
			zap.Uint("user_id", actor.UserID),
			zap.Error(err),
		)
	}
}

func lockOrder(a, b uint) []uint {
	if a == b {
		return []uint{a}
	}
	if a < b {
		return []uint{a, b}
	}
	return []uint{b, a}
}
