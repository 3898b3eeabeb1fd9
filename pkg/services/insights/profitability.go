package insights

import (
	"context"

	"github.com/quantamisecode-hub/groona-insights/pkg/models/domain"
	"github.com/quantamisecode-hub/groona-insights/pkg/services/currency"
)

// Engine runs the aggregation passes. All methods are pure with respect
// to their inputs: records are read-only and every call builds fresh
// output, so identical inputs yield identical aggregates.
type Engine struct {
	converter *currency.Converter
}

func NewEngine(converter *currency.Converter) *Engine {
	if converter == nil {
		converter = currency.NewConverter(nil)
	}
	return &Engine{converter: converter}
}

// Profitability computes the revenue/cost breakdown for one project.
// Only approved billable time and approved expenses contribute to cost.
// Malformed records degrade a single number, never the whole row.
func (e *Engine) Profitability(
	ctx context.Context,
	project domain.Project,
	entries []domain.TimeEntry,
	expenses []domain.Expense,
	users []domain.User,
) domain.ProjectProfitability {
	row := domain.ProjectProfitability{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Currency:    project.Currency,
	}

	row.Revenue = revenueFor(project)

	profiles := make(map[string]domain.User, len(users))
	for _, u := range users {
		profiles[u.Email] = u
	}

	lastSnapshotRate := 0.0
	for _, entry := range entries {
		if entry.ProjectID != project.ID {
			continue
		}
		if entry.Status != domain.TimeEntryApproved || !entry.IsBillable {
			continue
		}

		rate, approx := e.effectiveRate(ctx, entry, profiles, project.Currency)
		if approx {
			row.CostApproximate = true
		}
		if rate == 0 {
			rate = lastSnapshotRate
		} else {
			if lastSnapshotRate == 0 {
				row.LastSnapshotRate = rate
			}
			lastSnapshotRate = rate
		}

		hours := minutesToHours(entry.TotalMinutes)
		row.BillableMinutes += entry.TotalMinutes
		row.LaborCost += hours * rate
	}

	for _, exp := range expenses {
		if exp.ProjectID != project.ID || exp.Status != "approved" {
			continue
		}
		// A missing rate falls back to the raw, unconverted amount.
		// This mirrors the product's documented estimate path; the row
		// is flagged so downstream surfaces can mark it approximate.
		if e.converter.HasRate(exp.Currency, project.Currency) {
			res := e.converter.Convert(ctx, exp.Amount, exp.Currency, project.Currency)
			row.NonLaborCost += res.Amount
		} else {
			row.NonLaborCost += exp.Amount
			row.CostApproximate = true
		}
	}

	row.TotalCost = row.LaborCost + row.NonLaborCost
	row.Profit = row.Revenue - row.TotalCost
	if row.Revenue > 0 {
		row.MarginPercent = row.Profit / row.Revenue * 100
	}
	row.Leakage = row.Profit < 0
	row.Status = marginStatus(row.MarginPercent)
	return row
}

// ProfitabilityAll runs the per-project pass over every project.
func (e *Engine) ProfitabilityAll(
	ctx context.Context,
	projects []domain.Project,
	entries []domain.TimeEntry,
	expenses []domain.Expense,
	users []domain.User,
) []domain.ProjectProfitability {
	rows := make([]domain.ProjectProfitability, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, e.Profitability(ctx, p, entries, expenses, users))
	}
	return rows
}

func revenueFor(p domain.Project) float64 {
	switch p.BillingModel {
	case domain.BillingFixedPrice:
		if p.ContractAmount > 0 {
			return p.ContractAmount
		}
		return p.Budget
	case domain.BillingRetainer:
		return p.RetainerAmount
	case domain.BillingTimeAndMaterials:
		return p.EstimatedDuration * p.DefaultBillRate
	case domain.BillingNonBillable:
		return 0
	default:
		if p.Budget > 0 {
			return p.Budget
		}
		return p.ContractAmount
	}
}

// effectiveRate resolves the hourly rate for an entry: snapshot rates
// first, then the entry rate, then the user's profile rate, converted
// into the project currency.
func (e *Engine) effectiveRate(
	ctx context.Context,
	entry domain.TimeEntry,
	profiles map[string]domain.User,
	targetCurrency string,
) (float64, bool) {
	raw := 0.0
	from := entry.RateCurrency
	switch {
	case entry.SnapshotHourlyRate > 0:
		raw = entry.SnapshotHourlyRate
	case entry.SnapshotRate > 0:
		raw = entry.SnapshotRate
	case entry.HourlyRate > 0:
		raw = entry.HourlyRate
	default:
		if u, ok := profiles[entry.UserEmail]; ok {
			raw = u.HourlyRate
			from = u.RateCurrency
		}
	}
	if raw == 0 {
		return 0, false
	}

	res := e.converter.Convert(ctx, raw, from, targetCurrency)
	return res.Amount, res.Kind == currency.Approximate
}

func marginStatus(margin float64) domain.MarginStatus {
	switch {
	case margin < 0:
		return domain.MarginLoss
	case margin > 20:
		return domain.MarginHealthy
	case margin >= 10:
		return domain.MarginWarning
	default:
		return domain.MarginRisk
	}
}
