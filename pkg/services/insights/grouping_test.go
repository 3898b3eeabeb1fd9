package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantamisecode-hub/groona-insights/pkg/models/domain"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestGroupEntries_ByProject(t *testing.T) {
	projects := []domain.Project{
		{ID: "p1", Name: "Apollo"},
		{ID: "p2", Name: "Borealis"},
	}
	entries := []domain.TimeEntry{
		{ProjectID: "p1", TotalMinutes: 120, IsBillable: true, Status: domain.TimeEntryApproved, HourlyRate: 50},
		{ProjectID: "p1", TotalMinutes: 60, IsBillable: false},
		{ProjectID: "p2", TotalMinutes: 30, IsBillable: true, Status: domain.TimeEntrySubmitted, HourlyRate: 80},
		{ProjectID: "", TotalMinutes: 45},
		{ProjectID: "ghost", TotalMinutes: 15},
	}

	groups := GroupEntries(entries, ByProject(projects))
	require.Len(t, groups, 3)

	// descending hours, unknown and missing project IDs share the sentinel
	assert.Equal(t, "Apollo", groups[0].Name)
	assert.InDelta(t, 3.0, groups[0].Hours, 1e-9)
	assert.InDelta(t, 2.0, groups[0].BillableHours, 1e-9)
	assert.InDelta(t, 100.0, groups[0].Amount, 1e-9)

	assert.Equal(t, UnassignedBucket, groups[1].Name)
	assert.InDelta(t, 1.0, groups[1].Hours, 1e-9)

	assert.Equal(t, "Borealis", groups[2].Name)
	assert.InDelta(t, 0.5, groups[2].Hours, 1e-9)
	// submitted entries never accrue amounts
	assert.Zero(t, groups[2].Amount)
}

func TestGroupEntries_EveryEntryLandsInExactlyOneBucket(t *testing.T) {
	entries := []domain.TimeEntry{
		{UserEmail: "a@x.io", TotalMinutes: 10},
		{UserEmail: "", TotalMinutes: 20},
		{UserEmail: "b@x.io", TotalMinutes: 30},
		{UserEmail: "a@x.io", TotalMinutes: 40},
	}

	groups := GroupEntries(entries, ByUser())

	counted := 0
	for _, g := range groups {
		counted += len(g.Entries)
	}
	assert.Equal(t, len(entries), counted)
}

func TestGroupEntries_BySprint_BacklogSentinel(t *testing.T) {
	entries := []domain.TimeEntry{
		{SprintID: "sprint-9", TotalMinutes: 60},
		{SprintID: "", TotalMinutes: 60},
	}

	groups := GroupEntries(entries, BySprint())
	require.Len(t, groups, 2)

	names := []string{groups[0].Name, groups[1].Name}
	assert.Contains(t, names, "sprint-9")
	assert.Contains(t, names, BacklogBucket)
}

func TestGroupEntries_ByDate_AndWorkType(t *testing.T) {
	entries := []domain.TimeEntry{
		{Date: day("2025-03-01"), TotalMinutes: 60, IsBillable: true},
		{Date: day("2025-03-01"), TotalMinutes: 30},
		{Date: time.Time{}, TotalMinutes: 15},
	}

	byDate := GroupEntries(entries, ByDate())
	require.Len(t, byDate, 2)
	assert.Equal(t, "2025-03-01", byDate[0].Name)
	assert.Equal(t, UnassignedBucket, byDate[1].Name)

	byType := GroupEntries(entries, ByWorkType())
	require.Len(t, byType, 2)
	assert.Equal(t, "Billable", byType[0].Name)
	assert.Equal(t, "Non-Billable", byType[1].Name)
}

func TestGroupEntries_TiesBreakByNameAscending(t *testing.T) {
	entries := []domain.TimeEntry{
		{UserEmail: "zoe@x.io", TotalMinutes: 60},
		{UserEmail: "amy@x.io", TotalMinutes: 60},
	}

	groups := GroupEntries(entries, ByUser())
	require.Len(t, groups, 2)
	assert.Equal(t, "amy@x.io", groups[0].Name)
	assert.Equal(t, "zoe@x.io", groups[1].Name)
}

func TestGroupEntries_NegativeMinutesContributeZeroHours(t *testing.T) {
	entries := []domain.TimeEntry{
		{UserEmail: "a@x.io", TotalMinutes: -90},
	}

	groups := GroupEntries(entries, ByUser())
	require.Len(t, groups, 1)
	assert.Zero(t, groups[0].Hours)
	assert.Len(t, groups[0].Entries, 1)
}
