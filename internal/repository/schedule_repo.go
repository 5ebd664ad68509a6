package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/models"
)

type ScheduleRepository interface {
	Create(ctx context.Context, schedule *models.Schedule) error
	// FindByEmployeeAndDate returns gorm.ErrRecordNotFound when the employee is
	// not rostered on the date. Absence is an expected outcome, distinct from a
	// storage failure.
	FindByEmployeeAndDate(ctx context.Context, employeeID uint, date time.Time) (*models.Schedule, error)
	FindByEmployeeAndDateTx(ctx context.Context, tx *gorm.DB, employeeID uint, date time.Time) (*models.Schedule, error)
}

type scheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *models.Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *scheduleRepository) FindByEmployeeAndDate(ctx context.Context, employeeID uint, date time.Time) (*models.Schedule, error) {
	return r.FindByEmployeeAndDateTx(ctx, r.db, employeeID, date)
}

func (r *scheduleRepository) FindByEmployeeAndDateTx(ctx context.Context, tx *gorm.DB, employeeID uint, date time.Time) (*models.Schedule, error) {
	var schedule models.Schedule
	err := tx.WithContext(ctx).
		Where("employee_id = ? AND date = ?", employeeID, date).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}
