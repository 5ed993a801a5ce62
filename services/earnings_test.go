package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groompro-backend/models"
)

func makeAppointment(groomerID *uuid.UUID, serviceID uuid.UUID, total float64, scheduledAt time.Time) models.Appointment {
	return models.Appointment{
		ID:          uuid.New(),
		GroomerID:   groomerID,
		ServiceID:   serviceID,
		TotalPrice:  total,
		Status:      models.StatusCompleted,
		ScheduledAt: scheduledAt,
	}
}

func TestCalculateCommissionNoConfig(t *testing.T) {
	appt := makeAppointment(nil, uuid.New(), 120, time.Now())
	assert.Equal(t, 0.0, CalculateCommission(appt, nil))
}

func TestCalculateCommissionPercentage(t *testing.T) {
	appt := makeAppointment(nil, uuid.New(), 160, time.Now())
	cfg := &models.StaffCommission{RateType: models.RatePercentage, Rate: 25}

	assert.Equal(t, 40.0, CalculateCommission(appt, cfg))
}

func TestCalculateCommissionFlatRate(t *testing.T) {
	appt := makeAppointment(nil, uuid.New(), 160, time.Now())
	cfg := &models.StaffCommission{RateType: models.RateFlat, Rate: 15}

	// flat rate ignores the appointment total entirely
	assert.Equal(t, 15.0, CalculateCommission(appt, cfg))
}

func TestCalculateCommissionServiceOverride(t *testing.T) {
	serviceID := uuid.New()
	appt := makeAppointment(nil, serviceID, 200, time.Now())

	cfg := &models.StaffCommission{
		RateType: models.RatePercentage,
		Rate:     20,
		ServiceOverrides: []models.CommissionServiceOverride{
			{ServiceID: uuid.New(), Rate: 50},
			{ServiceID: serviceID, Rate: 30},
		},
	}

	// the override replaces the rate, not the base
	assert.Equal(t, 60.0, CalculateCommission(appt, cfg))
}

func TestCalculateCommissionOverrideDoesNotChangeRateType(t *testing.T) {
	serviceID := uuid.New()
	appt := makeAppointment(nil, serviceID, 200, time.Now())

	cfg := &models.StaffCommission{
		RateType: models.RateFlat,
		Rate:     10,
		ServiceOverrides: []models.CommissionServiceOverride{
			{ServiceID: serviceID, Rate: 25},
		},
	}

	assert.Equal(t, 25.0, CalculateCommission(appt, cfg))
}

func TestBuildEarningsReportSummary(t *testing.T) {
	groomer := uuid.New()
	day := time.Date(2026, 3, 10, 10, 0, 0, 0, time.Local)

	appointments := []models.Appointment{
		makeAppointment(&groomer, uuid.New(), 75, day),
		makeAppointment(&groomer, uuid.New(), 85, day),
		makeAppointment(&groomer, uuid.New(), 65, day),
	}
	commissions := map[uuid.UUID]*models.StaffCommission{
		groomer: {RateType: models.RatePercentage, Rate: 40},
	}
	tips := map[uuid.UUID]float64{
		appointments[0].ID: 10,
		appointments[2].ID: 5,
	}

	report := BuildEarningsReport(appointments, commissions, tips, GroupByDay)

	assert.Equal(t, 3, report.Summary.TotalServices)
	assert.Equal(t, 225.0, report.Summary.TotalRevenue)
	assert.Equal(t, 90.0, report.Summary.TotalCommission)
	assert.Equal(t, 15.0, report.Summary.TotalTips)

	require.Len(t, report.ByGroomer, 1)
	assert.Equal(t, groomer, report.ByGroomer[0].GroomerID)
	assert.Equal(t, 3, report.ByGroomer[0].ServicesCount)
	assert.Equal(t, 15.0, report.ByGroomer[0].Tips)
}

func TestBuildEarningsReportOrphanedTipsIgnored(t *testing.T) {
	groomer := uuid.New()
	appointments := []models.Appointment{
		makeAppointment(&groomer, uuid.New(), 50, time.Now()),
	}
	tips := map[uuid.UUID]float64{
		appointments[0].ID: 8,
		uuid.New():         100, // no matching appointment in the window
	}

	report := BuildEarningsReport(appointments, nil, tips, GroupByDay)

	assert.Equal(t, 8.0, report.Summary.TotalTips)
}

func TestBuildEarningsReportUnassignedGroomer(t *testing.T) {
	groomer := uuid.New()
	appointments := []models.Appointment{
		makeAppointment(&groomer, uuid.New(), 60, time.Now()),
		makeAppointment(nil, uuid.New(), 40, time.Now()),
	}

	report := BuildEarningsReport(appointments, nil, nil, GroupByDay)

	// unassigned appointments count toward totals but not the breakdown
	assert.Equal(t, 2, report.Summary.TotalServices)
	assert.Equal(t, 100.0, report.Summary.TotalRevenue)
	require.Len(t, report.ByGroomer, 1)
	assert.Equal(t, 1, report.ByGroomer[0].ServicesCount)
}

func TestBuildEarningsReportRoundsOnceAtOutput(t *testing.T) {
	groomer := uuid.New()
	day := time.Now()

	// each commission is 33.333...; accumulating rounded values would give
	// 99.99, accumulating at full precision and rounding once gives 100.00
	appointments := []models.Appointment{
		makeAppointment(&groomer, uuid.New(), 100, day),
		makeAppointment(&groomer, uuid.New(), 100, day),
		makeAppointment(&groomer, uuid.New(), 100, day),
	}
	commissions := map[uuid.UUID]*models.StaffCommission{
		groomer: {RateType: models.RatePercentage, Rate: 100.0 / 3.0},
	}

	report := BuildEarningsReport(appointments, commissions, nil, GroupByDay)

	assert.Equal(t, 100.0, report.Summary.TotalCommission)
}

func TestBuildEarningsReportFloatAccumulation(t *testing.T) {
	groomer := uuid.New()
	appointments := []models.Appointment{
		makeAppointment(&groomer, uuid.New(), 0.1, time.Now()),
		makeAppointment(&groomer, uuid.New(), 0.2, time.Now()),
	}

	report := BuildEarningsReport(appointments, nil, nil, GroupByDay)

	assert.Equal(t, 0.3, report.Summary.TotalRevenue)
}

func TestBuildEarningsReportByGroomerSorted(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	appointments := []models.Appointment{
		makeAppointment(&a, uuid.New(), 10, time.Now()),
		makeAppointment(&b, uuid.New(), 20, time.Now()),
	}

	report := BuildEarningsReport(appointments, nil, nil, GroupByDay)

	require.Len(t, report.ByGroomer, 2)
	assert.True(t, report.ByGroomer[0].GroomerID.String() < report.ByGroomer[1].GroomerID.String())
}

func TestBuildEarningsReportDeterministic(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	appointments := []models.Appointment{
		makeAppointment(&a, uuid.New(), 33.33, time.Date(2026, 3, 9, 9, 0, 0, 0, time.Local)),
		makeAppointment(&b, uuid.New(), 44.44, time.Date(2026, 3, 11, 9, 0, 0, 0, time.Local)),
		makeAppointment(&a, uuid.New(), 55.55, time.Date(2026, 3, 11, 14, 0, 0, 0, time.Local)),
	}
	commissions := map[uuid.UUID]*models.StaffCommission{
		a: {RateType: models.RatePercentage, Rate: 45},
		b: {RateType: models.RateFlat, Rate: 12},
	}

	first := BuildEarningsReport(appointments, commissions, nil, GroupByWeek)
	second := BuildEarningsReport(appointments, commissions, nil, GroupByWeek)

	assert.Equal(t, first, second)
}

func TestPeriodKeyDay(t *testing.T) {
	appt := makeAppointment(nil, uuid.New(), 10, time.Date(2026, 3, 10, 15, 30, 0, 0, time.Local))
	assert.Equal(t, "2026-03-10", PeriodKey(appt, GroupByDay))
}

func TestPeriodKeyWeekStartsSunday(t *testing.T) {
	// 2026-03-10 is a Tuesday; its week starts Sunday 2026-03-08
	appt := makeAppointment(nil, uuid.New(), 10, time.Date(2026, 3, 10, 15, 30, 0, 0, time.Local))
	assert.Equal(t, "2026-03-08", PeriodKey(appt, GroupByWeek))

	sunday := makeAppointment(nil, uuid.New(), 10, time.Date(2026, 3, 8, 0, 0, 0, 0, time.Local))
	assert.Equal(t, "2026-03-08", PeriodKey(sunday, GroupByWeek))
}

func TestPeriodKeyMonth(t *testing.T) {
	appt := makeAppointment(nil, uuid.New(), 10, time.Date(2026, 3, 10, 15, 30, 0, 0, time.Local))
	assert.Equal(t, "2026-03", PeriodKey(appt, GroupByMonth))
}

func TestBuildEarningsReportTimelineSorted(t *testing.T) {
	groomer := uuid.New()
	appointments := []models.Appointment{
		makeAppointment(&groomer, uuid.New(), 30, time.Date(2026, 3, 11, 9, 0, 0, 0, time.Local)),
		makeAppointment(&groomer, uuid.New(), 20, time.Date(2026, 3, 9, 9, 0, 0, 0, time.Local)),
		makeAppointment(&groomer, uuid.New(), 10, time.Date(2026, 3, 9, 17, 0, 0, 0, time.Local)),
	}

	report := BuildEarningsReport(appointments, nil, nil, GroupByDay)

	require.Len(t, report.Timeline, 2)
	assert.Equal(t, "2026-03-09", report.Timeline[0].Period)
	assert.Equal(t, 2, report.Timeline[0].ServicesCount)
	assert.Equal(t, 30.0, report.Timeline[0].Revenue)
	assert.Equal(t, "2026-03-11", report.Timeline[1].Period)
}
