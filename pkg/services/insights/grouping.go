package insights

import (
	"sort"

	"github.com/quantamisecode-hub/groona-insights/pkg/models/domain"
)

const (
	// UnassignedBucket collects entries whose grouping key is absent.
	// Keeping them in a sentinel bucket instead of dropping them is what
	// lets totals reconcile against the unfiltered source collection.
	UnassignedBucket = "Unassigned"
	// BacklogBucket is the sentinel for entries without a sprint.
	BacklogBucket = "Backlog/General"
)

// GroupKey selects the bucket name for a time entry.
type GroupKey func(domain.TimeEntry) string

// ByProject groups by project name, resolved through the provided
// project list; unknown or missing project IDs fall into the sentinel.
func ByProject(projects []domain.Project) GroupKey {
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return func(e domain.TimeEntry) string {
		if e.ProjectID == "" {
			return UnassignedBucket
		}
		if name, ok := names[e.ProjectID]; ok && name != "" {
			return name
		}
		return UnassignedBucket
	}
}

// ByUser groups by user email.
func ByUser() GroupKey {
	return func(e domain.TimeEntry) string {
		if e.UserEmail == "" {
			return UnassignedBucket
		}
		return e.UserEmail
	}
}

// ByDate groups by calendar day.
func ByDate() GroupKey {
	return func(e domain.TimeEntry) string {
		if e.Date.IsZero() {
			return UnassignedBucket
		}
		return e.Date.Format("2006-01-02")
	}
}

// BySprint groups by sprint, with unscheduled work in the backlog bucket.
func BySprint() GroupKey {
	return func(e domain.TimeEntry) string {
		if e.SprintID == "" {
			return BacklogBucket
		}
		return e.SprintID
	}
}

// ByWorkType splits billable from non-billable work.
func ByWorkType() GroupKey {
	return func(e domain.TimeEntry) string {
		if e.IsBillable {
			return "Billable"
		}
		return "Non-Billable"
	}
}

// GroupEntries buckets entries by key and returns summaries ordered by
// descending hours (name ascending on ties, so identical inputs always
// produce identical output). Every input entry lands in exactly one
// bucket.
func GroupEntries(entries []domain.TimeEntry, key GroupKey) []domain.GroupSummary {
	buckets := make(map[string]*domain.GroupSummary)
	order := make([]string, 0)

	for _, e := range entries {
		name := key(e)
		g, ok := buckets[name]
		if !ok {
			g = &domain.GroupSummary{Name: name}
			buckets[name] = g
			order = append(order, name)
		}

		hours := minutesToHours(e.TotalMinutes)
		g.Hours += hours
		if e.IsBillable {
			g.BillableHours += hours
			if e.Status == domain.TimeEntryApproved {
				g.Amount += hours * entryRate(e)
			}
		}
		g.Entries = append(g.Entries, e)
	}

	groups := make([]domain.GroupSummary, 0, len(buckets))
	for _, name := range order {
		groups = append(groups, *buckets[name])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Hours != groups[j].Hours {
			return groups[i].Hours > groups[j].Hours
		}
		return groups[i].Name < groups[j].Name
	})
	return groups
}

func minutesToHours(minutes float64) float64 {
	if minutes < 0 {
		return 0
	}
	return minutes / 60
}

// entryRate resolves the rate recorded on the entry itself, without
// profile fallback or conversion; grouping amounts are indicative, the
// profitability pass owns the full resolution chain.
func entryRate(e domain.TimeEntry) float64 {
	switch {
	case e.SnapshotHourlyRate > 0:
		return e.SnapshotHourlyRate
	case e.SnapshotRate > 0:
		return e.SnapshotRate
	default:
		return e.HourlyRate
	}
}
