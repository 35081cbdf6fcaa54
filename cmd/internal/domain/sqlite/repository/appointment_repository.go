package repository

import (
	"errors"

	"gorm.io/gorm"

	"clinicdesk/cmd/internal/domain/entity"
)

type DefaultAppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *DefaultAppointmentRepository {
	return &DefaultAppointmentRepository{db: db}
}

func (a *DefaultAppointmentRepository) FindByID(id string) (*entity.Appointment, error) {
	var appt entity.Appointment
	err := a.db.First(&appt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (a *DefaultAppointmentRepository) ExistsByID(id string) (bool, error) {
	var count int64
	err := a.db.Model(&entity.Appointment{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll returns the full set in insertion order; dispatch ordering is the
// client's job.
func (a *DefaultAppointmentRepository) FindAll() ([]*entity.Appointment, error) {
	var appts []*entity.Appointment
	err := a.db.Find(&appts).Error
	return appts, err
}

func (a *DefaultAppointmentRepository) Save(appointment *entity.Appointment) error {
	return a.db.Save(appointment).Error
}

func (a *DefaultAppointmentRepository) DeleteByID(id string) error {
	return a.db.Delete(&entity.Appointment{}, "id = ?", id).Error
}
