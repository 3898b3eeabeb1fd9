package adapters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantamisecode-hub/groona-insights/pkg/models/api"
	"github.com/quantamisecode-hub/groona-insights/pkg/models/domain"
)

func strp(s string) *string   { return &s }
func nump(f float64) *float64 { return &f }

func TestMapTimeEntryAPIToDomain_DefaultsMissingFields(t *testing.T) {
	got := MapTimeEntryAPIToDomain(api.TimeEntry{})

	assert.True(t, got.Date.IsZero())
	assert.Empty(t, got.ProjectID)
	assert.Zero(t, got.TotalMinutes)
	assert.False(t, got.IsBillable)
}

func TestMapTimeEntryAPIToDomain_NegativeMinutesClampedToZero(t *testing.T) {
	got := MapTimeEntryAPIToDomain(api.TimeEntry{TotalMinutes: nump(-45)})
	assert.Zero(t, got.TotalMinutes)
}

func TestMapTimeEntryAPIToDomain_DateFormats(t *testing.T) {
	tests := []struct {
		name string
		date string
		want time.Time
	}{
		{"rfc3339", "2025-03-01T10:30:00Z", time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"date only", "2025-03-01", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"datetime", "2025-03-01 10:30:00", time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"garbage drops to zero", "yesterday-ish", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapTimeEntryAPIToDomain(api.TimeEntry{Date: tt.date})
			assert.True(t, got.Date.Equal(tt.want), "got %v want %v", got.Date, tt.want)
		})
	}
}

func TestMapProjectAPIToDomain(t *testing.T) {
	got := MapProjectAPIToDomain(api.Project{
		ID:             "p1",
		Name:           strp("Apollo"),
		Status:         strp("active"),
		Progress:       nump(60),
		ContractAmount: nump(1000),
		BillingModel:   strp("fixed_price"),
		Deadline:       strp("2025-09-01"),
	})

	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, domain.ProjectActive, got.Status)
	assert.Equal(t, domain.BillingFixedPrice, got.BillingModel)
	require.NotNil(t, got.Deadline)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), *got.Deadline)
}

func TestMapProjectAPIToDomain_MalformedDatesAreDropped(t *testing.T) {
	got := MapProjectAPIToDomain(api.Project{ID: "p1", Deadline: strp("soon")})
	assert.Nil(t, got.Deadline)
}

func TestMapTaskAPIToDomain_AssigneeNormalization(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"single string", "a@x.io", []string{"a@x.io"}},
		{"empty string", "", nil},
		{"array of strings", []any{"a@x.io", "b@x.io"}, []string{"a@x.io", "b@x.io"}},
		{"array skips non strings and blanks", []any{"a@x.io", 42, ""}, []string{"a@x.io"}},
		{"nil", nil, nil},
		{"unsupported type", 3.14, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapTaskAPIToDomain(api.Task{ID: "t1", AssignedTo: tt.in})
			assert.Equal(t, tt.want, got.AssignedTo)
		})
	}
}

func TestMapUserAPIToDomain(t *testing.T) {
	got := MapUserAPIToDomain(api.User{
		Email:      "a@x.io",
		Name:       strp("Ann"),
		HourlyRate: nump(85),
	})

	assert.Equal(t, "a@x.io", got.Email)
	assert.Equal(t, "Ann", got.Name)
	assert.InDelta(t, 85.0, got.HourlyRate, 1e-9)
}

func TestMapExpenseAPIToDomain(t *testing.T) {
	got := MapExpenseAPIToDomain(api.Expense{
		ProjectID: strp("p1"),
		Amount:    nump(120.5),
		Currency:  strp("EUR"),
		Status:    strp("approved"),
		Date:      strp("2025-03-01"),
	})

	assert.Equal(t, "p1", got.ProjectID)
	assert.InDelta(t, 120.5, got.Amount, 1e-9)
	assert.Equal(t, "approved", got.Status)
	assert.False(t, got.Date.IsZero())
}
