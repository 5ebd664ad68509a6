package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/models"
)

// ErrOverlap is returned when the bookings_no_overlap exclusion constraint
// rejects a commit. It is the storage-level backstop behind the in-transaction
// conflict check: if two transactions race past validation, one of them fails
// here instead of both persisting blocking bookings.
var ErrOverlap = errors.New("booking overlaps an existing blocking booking")

type BookingRepository interface {
	// InTransaction runs fn inside a database transaction. The service locks
	// the relevant employee rows at the start of fn so that the read-validate-
	// write sequence is serialized per employee.
	InTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error

	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	Save(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindBlockingByEmployeeAndDate(ctx context.Context, tx *gorm.DB, employeeID uint, date time.Time) ([]models.Booking, error)
	FindByCustomerAndStatuses(ctx context.Context, customerID uint, statuses []models.BookingStatus) ([]models.Booking, error)
	FindByEmployeeUserAndStatuses(ctx context.Context, userID uint, statuses []models.BookingStatus) ([]models.Booking, error)
	FindAllByStatuses(ctx context.Context, statuses []models.BookingStatus) ([]models.Booking, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) InTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	if err := tx.WithContext(ctx).Create(booking).Error; err != nil {
		if isOverlapViolation(err) {
			return ErrOverlap
		}
		return err
	}
	return nil
}

func (r *bookingRepository) Save(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	if err := tx.WithContext(ctx).Save(booking).Error; err != nil {
		if isOverlapViolation(err) {
			return ErrOverlap
		}
		return err
	}
	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindBlockingByEmployeeAndDate(ctx context.Context, tx *gorm.DB, employeeID uint, date time.Time) ([]models.Booking, error) {
	db := r.db
	if tx != nil {
		db = tx
	}
	var bookings []models.Booking
	err := db.WithContext(ctx).
		Where("employee_id = ? AND date = ? AND status IN ?", employeeID, date, []models.BookingStatus{models.StatusPending, models.StatusConfirmed}).
		Order("start_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByCustomerAndStatuses(ctx context.Context, customerID uint, statuses []models.BookingStatus) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND status IN ?", customerID, statuses).
		Order("start_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByEmployeeUserAndStatuses(ctx context.Context, userID uint, statuses []models.BookingStatus) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Joins("JOIN employees ON employees.id = bookings.employee_id").
		Where("employees.user_id = ? AND bookings.status IN ?", userID, statuses).
		Order("bookings.start_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindAllByStatuses(ctx context.Context, statuses []models.BookingStatus) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("start_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func isOverlapViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23P01" && pgErr.ConstraintName == "bookings_no_overlap"
}
