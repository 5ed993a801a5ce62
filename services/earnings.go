// services/earnings.go
package services

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"groompro-backend/models"
	"groompro-backend/utils"
)

// Timeline granularities
const (
	GroupByDay   = "day"
	GroupByWeek  = "week"
	GroupByMonth = "month"
)

type EarningsSummary struct {
	TotalServices   int     `json:"total_services"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalCommission float64 `json:"total_commission"`
	TotalTips       float64 `json:"total_tips"`
}

type GroomerEarnings struct {
	GroomerID     uuid.UUID `json:"groomer_id"`
	ServicesCount int       `json:"services_count"`
	Revenue       float64   `json:"revenue"`
	Commission    float64   `json:"commission"`
	Tips          float64   `json:"tips"`
}

type TimelineEntry struct {
	Period        string  `json:"period"`
	ServicesCount int     `json:"services_count"`
	Revenue       float64 `json:"revenue"`
	Commission    float64 `json:"commission"`
}

type EarningsReport struct {
	Summary   EarningsSummary   `json:"summary"`
	ByGroomer []GroomerEarnings `json:"by_groomer"`
	Timeline  []TimelineEntry   `json:"timeline"`
}

// CalculateCommission computes the commission owed for one completed
// appointment. A groomer without an explicit commission config earns
// nothing; no default rate is ever inferred.
//
// The base amount is always the full total price. IncludeAddons is stored
// with the config but deliberately not applied here (see DESIGN.md).
func CalculateCommission(appt models.Appointment, cfg *models.StaffCommission) float64 {
	if cfg == nil {
		return 0
	}

	base := appt.TotalPrice

	rate := cfg.Rate
	for _, override := range cfg.ServiceOverrides {
		if override.ServiceID == appt.ServiceID {
			// first match wins, service_id is treated as unique here
			rate = override.Rate
			break
		}
	}

	if cfg.RateType == models.RatePercentage {
		return base * rate / 100
	}
	return rate
}

// BuildEarningsReport aggregates completed appointments (with commission
// configs keyed by groomer and tip amounts keyed by appointment) into the
// full report. It is a pure function: identical inputs produce identical
// output.
//
// Tips keyed by an appointment id not present in the input set are ignored.
// Monetary fields accumulate at full precision and are rounded to two
// decimal places once, at output.
func BuildEarningsReport(
	appointments []models.Appointment,
	commissions map[uuid.UUID]*models.StaffCommission,
	tips map[uuid.UUID]float64,
	groupBy string,
) EarningsReport {
	type accumulator struct {
		count      int
		revenue    decimal.Decimal
		commission decimal.Decimal
		tips       decimal.Decimal
	}

	var total accumulator
	byGroomer := make(map[uuid.UUID]*accumulator)
	byPeriod := make(map[string]*accumulator)

	for _, appt := range appointments {
		var cfg *models.StaffCommission
		if appt.GroomerID != nil {
			cfg = commissions[*appt.GroomerID]
		}

		revenue := decimal.NewFromFloat(appt.TotalPrice)
		commission := decimal.NewFromFloat(CalculateCommission(appt, cfg))
		tip := decimal.NewFromFloat(tips[appt.ID])

		total.count++
		total.revenue = total.revenue.Add(revenue)
		total.commission = total.commission.Add(commission)
		total.tips = total.tips.Add(tip)

		// appointments without an assigned groomer count toward the
		// summary but not the breakdown
		if appt.GroomerID != nil {
			acc, ok := byGroomer[*appt.GroomerID]
			if !ok {
				acc = &accumulator{}
				byGroomer[*appt.GroomerID] = acc
			}
			acc.count++
			acc.revenue = acc.revenue.Add(revenue)
			acc.commission = acc.commission.Add(commission)
			acc.tips = acc.tips.Add(tip)
		}

		period := PeriodKey(appt, groupBy)
		acc, ok := byPeriod[period]
		if !ok {
			acc = &accumulator{}
			byPeriod[period] = acc
		}
		acc.count++
		acc.revenue = acc.revenue.Add(revenue)
		acc.commission = acc.commission.Add(commission)
	}

	round := func(d decimal.Decimal) float64 {
		return d.Round(2).InexactFloat64()
	}

	report := EarningsReport{
		Summary: EarningsSummary{
			TotalServices:   total.count,
			TotalRevenue:    round(total.revenue),
			TotalCommission: round(total.commission),
			TotalTips:       round(total.tips),
		},
		ByGroomer: make([]GroomerEarnings, 0, len(byGroomer)),
		Timeline:  make([]TimelineEntry, 0, len(byPeriod)),
	}

	for groomerID, acc := range byGroomer {
		report.ByGroomer = append(report.ByGroomer, GroomerEarnings{
			GroomerID:     groomerID,
			ServicesCount: acc.count,
			Revenue:       round(acc.revenue),
			Commission:    round(acc.commission),
			Tips:          round(acc.tips),
		})
	}
	sort.Slice(report.ByGroomer, func(i, j int) bool {
		return report.ByGroomer[i].GroomerID.String() < report.ByGroomer[j].GroomerID.String()
	})

	for period, acc := range byPeriod {
		report.Timeline = append(report.Timeline, TimelineEntry{
			Period:        period,
			ServicesCount: acc.count,
			Revenue:       round(acc.revenue),
			Commission:    round(acc.commission),
		})
	}
	// lexicographic order; chronological for day and month keys
	sort.Slice(report.Timeline, func(i, j int) bool {
		return report.Timeline[i].Period < report.Timeline[j].Period
	})

	return report
}

// PeriodKey buckets an appointment's scheduled time into a timeline period.
// Timestamps are interpreted in server-local time; no timezone
// normalization is performed.
func PeriodKey(appt models.Appointment, groupBy string) string {
	switch groupBy {
	case GroupByWeek:
		return utils.StartOfWeek(appt.ScheduledAt).Format("2006-01-02")
	case GroupByMonth:
		return appt.ScheduledAt.Format("2006-01")
	default:
		return appt.ScheduledAt.Format("2006-01-02")
	}
}
