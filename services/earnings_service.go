// services/earnings_service.go
package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"groompro-backend/models"
)

// EarningsRepository exposes only the typed reads the earnings core needs,
// keeping query-builder chains out of the calculation path.
type EarningsRepository interface {
	FetchCompletedAppointments(businessID uuid.UUID, start, end time.Time, groomerID *uuid.UUID) ([]models.Appointment, error)
	FetchCommissionConfigs(businessID uuid.UUID) (map[uuid.UUID]*models.StaffCommission, error)
	FetchTipAmounts(businessID uuid.UUID, start, end time.Time) (map[uuid.UUID]float64, error)
}

type EarningsService struct {
	repo EarningsRepository
}

func NewEarningsService(repo EarningsRepository) *EarningsService {
	return &EarningsService{repo: repo}
}

// Report fetches the period's completed appointments, commission configs,
// and tips, then hands them to the pure aggregator.
func (s *EarningsService) Report(businessID uuid.UUID, start, end time.Time, groomerID *uuid.UUID, groupBy string) (EarningsReport, error) {
	appointments, err := s.repo.FetchCompletedAppointments(businessID, start, end, groomerID)
	if err != nil {
		return EarningsReport{}, err
	}

	commissions, err := s.repo.FetchCommissionConfigs(businessID)
	if err != nil {
		return EarningsReport{}, err
	}

	tips, err := s.repo.FetchTipAmounts(businessID, start, end)
	if err != nil {
		return EarningsReport{}, err
	}

	return BuildEarningsReport(appointments, commissions, tips, groupBy), nil
}

// GormEarningsRepository is the database-backed EarningsRepository.
type GormEarningsRepository struct {
	db *gorm.DB
}

func NewGormEarningsRepository(db *gorm.DB) *GormEarningsRepository {
	return &GormEarningsRepository{db: db}
}

func (r *GormEarningsRepository) FetchCompletedAppointments(businessID uuid.UUID, start, end time.Time, groomerID *uuid.UUID) ([]models.Appointment, error) {
	var appointments []models.Appointment
	query := r.db.Where("business_id = ? AND status = ? AND scheduled_at BETWEEN ? AND ?",
		businessID, models.StatusCompleted, start, end)
	if groomerID != nil {
		query = query.Where("groomer_id = ?", *groomerID)
	}
	err := query.Order("scheduled_at ASC").Find(&appointments).Error
	return appointments, err
}

func (r *GormEarningsRepository) FetchCommissionConfigs(businessID uuid.UUID) (map[uuid.UUID]*models.StaffCommission, error) {
	var configs []models.StaffCommission
	err := r.db.Preload("ServiceOverrides", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("business_id = ?", businessID).Find(&configs).Error
	if err != nil {
		return nil, err
	}

	byGroomer := make(map[uuid.UUID]*models.StaffCommission, len(configs))
	for i := range configs {
		byGroomer[configs[i].GroomerID] = &configs[i]
	}
	return byGroomer, nil
}

func (r *GormEarningsRepository) FetchTipAmounts(businessID uuid.UUID, start, end time.Time) (map[uuid.UUID]float64, error) {
	var payments []models.Payment
	err := r.db.Where("business_id = ? AND paid_at BETWEEN ? AND ? AND appointment_id IS NOT NULL",
		businessID, start, end).Find(&payments).Error
	if err != nil {
		return nil, err
	}

	tips := make(map[uuid.UUID]float64, len(payments))
	for _, p := range payments {
		if p.AppointmentID == nil {
			continue
		}
		tips[*p.AppointmentID] += p.TipAmount
	}
	return tips, nil
}
