package adapters

import (
	"time"

	"github.com/quantamisecode-hub/groona-insights/pkg/models/api"
	"github.com/quantamisecode-hub/groona-insights/pkg/models/domain"
)

// API records are mapped into domain values here, with all defaulting
// applied at this boundary: missing numerics become 0, missing strings
// stay empty (grouping assigns sentinels), malformed dates are dropped.

func MapTimeEntryAPIToDomain(rec api.TimeEntry) domain.TimeEntry {
	return domain.TimeEntry{
		Date:               parseDate(rec.Date),
		ProjectID:          str(rec.ProjectID),
		UserEmail:          str(rec.UserEmail),
		TaskID:             str(rec.TaskID),
		SprintID:           str(rec.SprintID),
		TotalMinutes:       nonNegative(num(rec.TotalMinutes)),
		IsBillable:         boolean(rec.IsBillable),
		Status:             domain.TimeEntryStatus(str(rec.Status)),
		HourlyRate:         num(rec.HourlyRate),
		SnapshotRate:       num(rec.SnapshotRate),
		SnapshotHourlyRate: num(rec.SnapshotHourlyRate),
		RateCurrency:       str(rec.RateCurrency),
	}
}

func MapProjectAPIToDomain(rec api.Project) domain.Project {
	return domain.Project{
		ID:                rec.ID,
		Name:              str(rec.Name),
		Status:            domain.ProjectStatus(str(rec.Status)),
		Progress:          num(rec.Progress),
		Budget:            num(rec.Budget),
		ContractAmount:    num(rec.ContractAmount),
		RetainerAmount:    num(rec.RetainerAmount),
		EstimatedDuration: num(rec.EstimatedDuration),
		DefaultBillRate:   num(rec.DefaultBillRate),
		ActualCost:        num(rec.ActualCost),
		Currency:          str(rec.Currency),
		BillingModel:      domain.BillingModel(str(rec.BillingModel)),
		Deadline:          parseDatePtr(rec.Deadline),
		StartDate:         parseDatePtr(rec.StartDate),
		RiskLevel:         domain.RiskLevel(str(rec.RiskLevel)),
	}
}

func MapExpenseAPIToDomain(rec api.Expense) domain.Expense {
	return domain.Expense{
		ProjectID: str(rec.ProjectID),
		Amount:    num(rec.Amount),
		Currency:  str(rec.Currency),
		Status:    str(rec.Status),
		Date:      parseDate(str(rec.Date)),
	}
}

func MapTaskAPIToDomain(rec api.Task) domain.Task {
	return domain.Task{
		ID:             rec.ID,
		ProjectID:      str(rec.ProjectID),
		Status:         domain.TaskStatus(str(rec.Status)),
		Priority:       str(rec.Priority),
		AssignedTo:     assignees(rec.AssignedTo),
		DueDate:        parseDatePtr(rec.DueDate),
		EstimatedHours: num(rec.EstimatedHours),
		CompletedAt:    parseDatePtr(rec.CompletedAt),
	}
}

func MapUserAPIToDomain(rec api.User) domain.User {
	return domain.User{
		Email:        rec.Email,
		Name:         str(rec.Name),
		HourlyRate:   num(rec.HourlyRate),
		RateCurrency: str(rec.RateCurrency),
	}
}

// assignees normalizes assigned_to, which the backend delivers either
// as a single email string or an array of them.
func assignees(v any) []string {
	switch val := v.(type) {
	case string:
		if val == "" {
			return nil
		}
		return []string{val}
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return val
	default:
		return nil
	}
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func num(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func boolean(p *bool) bool {
	return p != nil && *p
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

var dateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"}

func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseDatePtr(p *string) *time.Time {
	if p == nil || *p == "" {
		return nil
	}
	t := parseDate(*p)
	if t.IsZero() {
		return nil
	}
	return &t
}
