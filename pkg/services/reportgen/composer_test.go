package reportgen

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantamisecode-hub/groona-insights/pkg/models/domain"
)

func headings(doc domain.ReportDocument) []string {
	var out []string
	for _, b := range doc.Blocks {
		switch b.Kind {
		case domain.BlockHeading1, domain.BlockHeading2, domain.BlockHeading3:
			out = append(out, b.Text)
		}
	}
	return out
}

func TestComposeProjectReport_Sections(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -2)

	doc := ComposeProjectReport(ProjectReportInput{
		Project: domain.Project{ID: "p1", Name: "Apollo", Status: domain.ProjectActive, Progress: 60},
		Profitability: domain.ProjectProfitability{
			Revenue: 1000, LaborCost: 150, TotalCost: 150,
			Profit: 850, MarginPercent: 85, Status: domain.MarginHealthy, Currency: "USD",
		},
		Health: domain.HealthScore{ProjectID: "p1", Score: 92},
		Risk: domain.RiskAssessment{
			ProjectID: "p1", Score: 12, Level: domain.RiskLow,
			Factors: []domain.RiskFactor{
				{Factor: "Overdue tasks", Impact: 6},
				{Factor: "Unassigned active tasks", Impact: 3},
				{Factor: "Review backlog", Impact: 2},
				{Factor: "Too many tasks in progress", Impact: 1},
			},
		},
		Tasks: []domain.Task{
			{ID: "t1", ProjectID: "p1", Status: domain.TaskCompleted},
			{ID: "t2", ProjectID: "p1", Status: domain.TaskInProgress, DueDate: &past},
		},
		Team:        []domain.User{{Email: "ann@x.io", Name: "Ann"}},
		Activity:    []ActivityItem{{At: now, Actor: "ann@x.io", Summary: "closed t1"}},
		GeneratedAt: now,
		GeneratedBy: "groona",
	})

	assert.Equal(t, "Apollo — Project Report", doc.Title)
	assert.Equal(t, []string{
		"Summary", "Financials", "Task Statistics", "Team", "Top Risk Factors", "Recent Activity",
	}, headings(doc))

	// at most three risk factors make the report
	numbered := 0
	for _, b := range doc.Blocks {
		if b.Kind == domain.BlockNumbered {
			numbered++
		}
	}
	assert.Equal(t, 3, numbered)
}

func TestComposeProjectReport_EmptySectionsOmitted(t *testing.T) {
	doc := ComposeProjectReport(ProjectReportInput{
		Project:     domain.Project{ID: "p1", Name: "Apollo"},
		GeneratedAt: time.Now(),
	})

	assert.Equal(t, []string{"Summary", "Financials", "Task Statistics"}, headings(doc))
}

func TestComposeProjectReport_ApproximateCostsGetANotice(t *testing.T) {
	doc := ComposeProjectReport(ProjectReportInput{
		Project:       domain.Project{ID: "p1", Name: "Apollo"},
		Profitability: domain.ProjectProfitability{CostApproximate: true},
		GeneratedAt:   time.Now(),
	})

	found := false
	for _, b := range doc.Blocks {
		if b.Kind == domain.BlockParagraph && strings.Contains(b.Text, "could not be converted") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestComposeAIReport_TruncatesAndParses(t *testing.T) {
	content := "# Outlook\n" + strings.Repeat("word ", 1000)

	doc := ComposeAIReport("Executive Summary", "ai", content,
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), 200)

	assert.Equal(t, "AI Executive Report", doc.Category)
	require.NotEmpty(t, doc.Blocks)
	assert.Equal(t, domain.BlockHeading1, doc.Blocks[0].Kind)

	last := doc.Blocks[len(doc.Blocks)-1]
	assert.Equal(t, "[content truncated]", last.Text)
}

func TestComposeProfitabilityReport(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 30)
	rows := []domain.ProjectProfitability{
		{ProjectName: "Apollo", Profit: 850, Currency: "USD", MarginPercent: 85, Status: domain.MarginHealthy},
		{ProjectName: "Borealis", Profit: -50, Currency: "USD", MarginPercent: -5, Status: domain.MarginLoss, CostApproximate: true},
	}

	report := ComposeProfitabilityReport(rows, start, end)

	assert.Equal(t, "Project Profitability", report.Title)
	assert.Equal(t, 30, report.Period.Duration)
	assert.InDelta(t, 800.0, report.TotalAmount, 1e-9)
	assert.Equal(t, "USD", report.Currency)
	require.Len(t, report.Sections, 2)

	var note string
	for _, d := range report.Sections[1].Details {
		if d.Name == "Non-Labor Cost" {
			note = d.Description
		}
	}
	assert.Contains(t, note, "unconverted")
}

func TestComposeUtilizationReport(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	summary := domain.UtilizationSummary{
		TotalActiveTasks: 4,
		Users: []domain.UserUtilization{
			{Email: "ann@x.io", EstimatedHours: 32.5, ActiveTasks: 3, Status: domain.WorkloadOptimal},
		},
	}

	report := ComposeUtilizationReport(summary, now)

	require.Len(t, report.Sections, 1)
	assert.Equal(t, 4, report.Sections[0].Summary["Active Tasks"])
	require.Len(t, report.Sections[0].Details, 1)
	assert.Equal(t, "32.5", report.Sections[0].Details[0].Value)
	assert.Contains(t, report.Sections[0].Details[0].Description, "optimal")
}
