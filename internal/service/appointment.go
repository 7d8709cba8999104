package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/JavierAQR/backend-luaspets/internal/models"
)

type AppointmentInput struct {
	PetID     uint   `json:"pet_id"`
	ServiceID uint   `json:"service_id"`
	Date      string `json:"date"`
	Reason    string `json:"reason"`
}

type AppointmentFilter struct {
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
	UserID   uint
	PetID    uint
}

type AppointmentService struct {
	DB *gorm.DB
}

func validAppointmentStatus(status string) bool {
	switch status {
	case models.AppointmentStatusPending, models.AppointmentStatusConfirmed,
		models.AppointmentStatusCancelled, models.AppointmentStatusCompleted:
		return true
	}
	return false
}

func applyFilter(q *gorm.DB, f AppointmentFilter) *gorm.DB {
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.DateFrom != nil {
		q = q.Where("date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("date <= ?", *f.DateTo)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.PetID != 0 {
		q = q.Where("pet_id = ?", f.PetID)
	}
	return q
}

// Create books an appointment: the pet must belong to the caller, the service
// must be active, and the date must parse and not be in the past.
func (s *AppointmentService) Create(ctx context.Context, userID uint, in AppointmentInput) (*models.Appointment, error) {
	if in.PetID == 0 || in.ServiceID == 0 || in.Date == "" {
		return nil, fmt.Errorf("%w: pet_id, service_id and date are required", ErrValidation)
	}

	date, err := time.Parse(time.RFC3339, in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid appointment date", ErrValidation)
	}
	if date.Before(time.Now()) {
		return nil, fmt.Errorf("%w: cannot book an appointment in the past", ErrValidation)
	}

	db := s.DB.WithContext(ctx)

	var pet models.Pet
	if err := db.First(&pet, in.PetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: the selected pet does not exist", ErrValidation)
		}
		return nil, err
	}
	if pet.OwnerID != userID {
		return nil, fmt.Errorf("%w: the selected pet does not belong to you", ErrForbidden)
	}

	var svc models.ClinicService
	if err := db.First(&svc, in.ServiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: the selected service is unavailable", ErrValidation)
		}
		return nil, err
	}
	if !svc.IsActive {
		return nil, fmt.Errorf("%w: the selected service is unavailable", ErrValidation)
	}

	appt := models.Appointment{
		UserID:    userID,
		PetID:     in.PetID,
		ServiceID: in.ServiceID,
		Date:      date,
		Status:    models.AppointmentStatusPending,
		Reason:    in.Reason,
	}
	if err := db.Create(&appt).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

func (s *AppointmentService) ListForUser(ctx context.Context, userID uint, f AppointmentFilter) ([]models.Appointment, error) {
	f.UserID = userID
	var appts []models.Appointment
	q := applyFilter(s.DB.WithContext(ctx).Model(&models.Appointment{}), f)
	if err := q.Order("date DESC").Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

func (s *AppointmentService) ListAll(ctx context.Context, f AppointmentFilter) ([]models.Appointment, error) {
	var appts []models.Appointment
	q := applyFilter(s.DB.WithContext(ctx).Model(&models.Appointment{}), f)
	if err := q.Order("date DESC").Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

func (s *AppointmentService) GetByID(ctx context.Context, callerID uint, role string, id uint) (*models.Appointment, error) {
	var appt models.Appointment
	if err := s.DB.WithContext(ctx).First(&appt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: appointment not found", ErrNotFound)
		}
		return nil, err
	}
	if role != models.RoleAdmin && appt.UserID != callerID {
		return nil, fmt.Errorf("%w: this appointment does not belong to you", ErrForbidden)
	}
	return &appt, nil
}

// Cancel is allowed for the owner or an admin, never from COMPLETED and
// never twice.
func (s *AppointmentService) Cancel(ctx context.Context, callerID uint, role string, id uint) (*models.Appointment, error) {
	appt, err := s.GetByID(ctx, callerID, role, id)
	if err != nil {
		return nil, err
	}

	switch appt.Status {
	case models.AppointmentStatusCompleted:
		return nil, fmt.Errorf("%w: a completed appointment cannot be cancelled", ErrConflict)
	case models.AppointmentStatusCancelled:
		return nil, fmt.Errorf("%w: the appointment is already cancelled", ErrConflict)
	}

	if err := s.DB.WithContext(ctx).Model(appt).Update("status", models.AppointmentStatusCancelled).Error; err != nil {
		return nil, err
	}
	appt.Status = models.AppointmentStatusCancelled
	return appt, nil
}

// UpdateStatus is the admin transition; any of the four states is reachable.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Appointment, error) {
	if !validAppointmentStatus(status) {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}

	var appt models.Appointment
	if err := s.DB.WithContext(ctx).First(&appt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: appointment not found", ErrNotFound)
		}
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Model(&appt).Update("status", status).Error; err != nil {
		return nil, err
	}
	appt.Status = status
	return &appt, nil
}
