package insights

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quantamisecode-hub/groona-insights/pkg/models/domain"
	"github.com/quantamisecode-hub/groona-insights/pkg/services/currency"
)

func TestProfitability_LaborCostFromApprovedBillableTime(t *testing.T) {
	engine := NewEngine(nil)
	project := domain.Project{
		ID:             "p1",
		Name:           "Apollo",
		Currency:       "USD",
		BillingModel:   domain.BillingFixedPrice,
		ContractAmount: 1000,
	}
	entries := []domain.TimeEntry{
		{ProjectID: "p1", TotalMinutes: 60, IsBillable: true, Status: domain.TimeEntryApproved, HourlyRate: 50},
		{ProjectID: "p1", TotalMinutes: 90, IsBillable: true, Status: domain.TimeEntryApproved, HourlyRate: 50},
		{ProjectID: "p1", TotalMinutes: 30, IsBillable: true, Status: domain.TimeEntryApproved, HourlyRate: 50},
		// none of these may contribute
		{ProjectID: "p1", TotalMinutes: 600, IsBillable: false, Status: domain.TimeEntryApproved, HourlyRate: 50},
		{ProjectID: "p1", TotalMinutes: 600, IsBillable: true, Status: domain.TimeEntrySubmitted, HourlyRate: 50},
		{ProjectID: "p2", TotalMinutes: 600, IsBillable: true, Status: domain.TimeEntryApproved, HourlyRate: 50},
	}

	row := engine.Profitability(context.Background(), project, entries, nil, nil)

	assert.InDelta(t, 150.0, row.LaborCost, 1e-9)
	assert.InDelta(t, 180.0, row.BillableMinutes, 1e-9)
	assert.InDelta(t, 1000.0, row.Revenue, 1e-9)
	assert.InDelta(t, 850.0, row.Profit, 1e-9)
	assert.InDelta(t, 85.0, row.MarginPercent, 1e-9)
	assert.Equal(t, domain.MarginHealthy, row.Status)
	assert.False(t, row.Leakage)
}

func TestProfitability_RateResolutionChain(t *testing.T) {
	engine := NewEngine(nil)
	project := domain.Project{ID: "p1", Currency: "USD"}
	users := []domain.User{{Email: "dev@x.io", HourlyRate: 40, RateCurrency: "USD"}}

	tests := []struct {
		name  string
		entry domain.TimeEntry
		want  float64
	}{
		{
			name: "snapshot hourly rate wins",
			entry: domain.TimeEntry{
				SnapshotHourlyRate: 100, SnapshotRate: 90, HourlyRate: 80,
			},
			want: 100,
		},
		{
			name: "snapshot rate next",
			entry: domain.TimeEntry{
				SnapshotRate: 90, HourlyRate: 80,
			},
			want: 90,
		},
		{
			name:  "entry rate next",
			entry: domain.TimeEntry{HourlyRate: 80},
			want:  80,
		},
		{
			name:  "profile rate last",
			entry: domain.TimeEntry{UserEmail: "dev@x.io"},
			want:  40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := tt.entry
			e.ProjectID = "p1"
			e.TotalMinutes = 60
			e.IsBillable = true
			e.Status = domain.TimeEntryApproved

			row := engine.Profitability(context.Background(), project, []domain.TimeEntry{e}, nil, users)
			assert.InDelta(t, tt.want, row.LaborCost, 1e-9)
		})
	}
}

func TestProfitability_ZeroRateEntriesReuseLastSnapshotRate(t *testing.T) {
	engine := NewEngine(nil)
	project := domain.Project{ID: "p1", Currency: "USD"}
	entries := []domain.TimeEntry{
		{ProjectID: "p1", TotalMinutes: 60, IsBillable: true, Status: domain.TimeEntryApproved, SnapshotHourlyRate: 75},
		{ProjectID: "p1", TotalMinutes: 60, IsBillable: true, Status: domain.TimeEntryApproved},
	}

	row := engine.Profitability(context.Background(), project, entries, nil, nil)

	assert.InDelta(t, 150.0, row.LaborCost, 1e-9)
	assert.InDelta(t, 75.0, row.LastSnapshotRate, 1e-9)
}

func TestProfitability_ExpenseConversionFallbackFlagsApproximate(t *testing.T) {
	converter := currency.NewConverter(nil)
	converter.SetRate("EUR", "USD", 1.1)
	engine := NewEngine(converter)
	project := domain.Project{ID: "p1", Currency: "USD"}
	expenses := []domain.Expense{
		{ProjectID: "p1", Amount: 100, Currency: "EUR", Status: "approved"},
		{ProjectID: "p1", Amount: 200, Currency: "GBP", Status: "approved"}, // no rate
		{ProjectID: "p1", Amount: 999, Currency: "USD", Status: "pending"},  // not approved
	}

	row := engine.Profitability(context.Background(), project, nil, expenses, nil)

	assert.InDelta(t, 110.0+200.0, row.NonLaborCost, 1e-9)
	assert.True(t, row.CostApproximate)
}

func TestProfitability_NegativeProfitMarksLeakage(t *testing.T) {
	engine := NewEngine(nil)
	project := domain.Project{ID: "p1", Currency: "USD", BillingModel: domain.BillingRetainer, RetainerAmount: 50}
	entries := []domain.TimeEntry{
		{ProjectID: "p1", TotalMinutes: 120, IsBillable: true, Status: domain.TimeEntryApproved, HourlyRate: 60},
	}

	row := engine.Profitability(context.Background(), project, entries, nil, nil)

	assert.True(t, row.Leakage)
	assert.Equal(t, domain.MarginLoss, row.Status)
}

func TestRevenueFor_BillingModels(t *testing.T) {
	tests := []struct {
		name    string
		project domain.Project
		want    float64
	}{
		{
			name:    "fixed price uses contract amount",
			project: domain.Project{BillingModel: domain.BillingFixedPrice, ContractAmount: 5000, Budget: 3000},
			want:    5000,
		},
		{
			name:    "fixed price falls back to budget",
			project: domain.Project{BillingModel: domain.BillingFixedPrice, Budget: 3000},
			want:    3000,
		},
		{
			name:    "retainer",
			project: domain.Project{BillingModel: domain.BillingRetainer, RetainerAmount: 2500},
			want:    2500,
		},
		{
			name:    "time and materials",
			project: domain.Project{BillingModel: domain.BillingTimeAndMaterials, EstimatedDuration: 100, DefaultBillRate: 120},
			want:    12000,
		},
		{
			name:    "non billable",
			project: domain.Project{BillingModel: domain.BillingNonBillable, Budget: 9999},
			want:    0,
		},
		{
			name:    "unknown model prefers budget",
			project: domain.Project{BillingModel: "custom", Budget: 700, ContractAmount: 100},
			want:    700,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, revenueFor(tt.project), 1e-9)
		})
	}
}

func TestMarginStatus_Thresholds(t *testing.T) {
	assert.Equal(t, domain.MarginHealthy, marginStatus(20.1))
	assert.Equal(t, domain.MarginWarning, marginStatus(20))
	assert.Equal(t, domain.MarginWarning, marginStatus(10))
	assert.Equal(t, domain.MarginRisk, marginStatus(9.9))
	assert.Equal(t, domain.MarginRisk, marginStatus(0))
	assert.Equal(t, domain.MarginLoss, marginStatus(-0.1))
}

func TestProfitabilityAll_OneRowPerProject(t *testing.T) {
	engine := NewEngine(nil)
	projects := []domain.Project{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	rows := engine.ProfitabilityAll(context.Background(), projects, nil, nil, nil)

	assert.Len(t, rows, 3)
	assert.Equal(t, "a", rows[0].ProjectID)
	assert.Equal(t, "c", rows[2].ProjectID)
}
