package reportgen

import (
	"fmt"
	"time"

	"github.com/quantamisecode-hub/groona-insights/pkg/models/domain"
	"github.com/quantamisecode-hub/groona-insights/pkg/render/markdown"
)

// ActivityItem is one line of a project's activity log.
type ActivityItem struct {
	At      time.Time
	Actor   string
	Summary string
}

// ProjectReportInput bundles everything the fixed-schema project report
// covers: summary, task stats, team and activity log.
type ProjectReportInput struct {
	Project       domain.Project
	Profitability domain.ProjectProfitability
	Health        domain.HealthScore
	Risk          domain.RiskAssessment
	Tasks         []domain.Task
	Team          []domain.User
	Activity      []ActivityItem
	GeneratedAt   time.Time
	GeneratedBy   string
}

// ComposeProjectReport builds the block-structured project report
// document consumed by the PDF renderer.
func ComposeProjectReport(in ProjectReportInput) domain.ReportDocument {
	doc := domain.ReportDocument{
		Title:    fmt.Sprintf("%s — Project Report", in.Project.Name),
		Author:   in.GeneratedBy,
		Date:     in.GeneratedAt,
		Category: "Project Report",
	}

	add := func(kind domain.BlockKind, format string, args ...any) {
		doc.Blocks = append(doc.Blocks, domain.Block{Kind: kind, Text: fmt.Sprintf(format, args...)})
	}
	blank := func() {
		doc.Blocks = append(doc.Blocks, domain.Block{Kind: domain.BlockBlank})
	}

	add(domain.BlockHeading1, "Summary")
	add(domain.BlockBullet, "Status: %s", in.Project.Status)
	add(domain.BlockBullet, "Progress: %.0f%%", clampPct(in.Project.Progress))
	add(domain.BlockBullet, "Health score: %.0f/100", in.Health.Score)
	add(domain.BlockBullet, "Risk: %s (%.0f/100)", in.Risk.Level, in.Risk.Score)
	if in.Project.Deadline != nil {
		add(domain.BlockBullet, "Deadline: %s", in.Project.Deadline.Format("Jan 2, 2006"))
	}
	blank()

	add(domain.BlockHeading2, "Financials")
	add(domain.BlockBullet, "Revenue: %.2f %s", in.Profitability.Revenue, in.Profitability.Currency)
	add(domain.BlockBullet, "Labor cost: %.2f %s", in.Profitability.LaborCost, in.Profitability.Currency)
	add(domain.BlockBullet, "Non-labor cost: %.2f %s", in.Profitability.NonLaborCost, in.Profitability.Currency)
	add(domain.BlockBullet, "Margin: %.1f%% (%s)", in.Profitability.MarginPercent, in.Profitability.Status)
	if in.Profitability.CostApproximate {
		add(domain.BlockParagraph, "Some amounts could not be converted and are shown unconverted.")
	}
	blank()

	add(domain.BlockHeading2, "Task Statistics")
	total, completed, inProgress, overdue := taskStats(in.Project.ID, in.Tasks, in.GeneratedAt)
	add(domain.BlockBullet, "Total: %d", total)
	add(domain.BlockBullet, "Completed: %d", completed)
	add(domain.BlockBullet, "In progress: %d", inProgress)
	add(domain.BlockBullet, "Overdue: %d", overdue)
	blank()

	if len(in.Team) > 0 {
		add(domain.BlockHeading2, "Team")
		for _, u := range in.Team {
			name := u.Name
			if name == "" {
				name = u.Email
			}
			add(domain.BlockBullet, "%s: %s", name, u.Email)
		}
		blank()
	}

	if len(in.Risk.Factors) > 0 {
		add(domain.BlockHeading2, "Top Risk Factors")
		for i, f := range in.Risk.Factors {
			if i == 3 {
				break
			}
			add(domain.BlockNumbered, "%s: +%.0f", f.Factor, f.Impact)
		}
		blank()
	}

	if len(in.Activity) > 0 {
		add(domain.BlockHeading2, "Recent Activity")
		for _, item := range in.Activity {
			add(domain.BlockParagraph, "%s — %s: %s",
				item.At.Format("2006-01-02"), item.Actor, item.Summary)
		}
	}

	return doc
}

// ComposeAIReport parses AI-generated markdown into a compressed,
// single-page executive document. Content is capped before layout.
func ComposeAIReport(title, author, content string, generatedAt time.Time, maxChars int) domain.ReportDocument {
	return domain.ReportDocument{
		Title:    title,
		Author:   author,
		Date:     generatedAt,
		Category: "AI Executive Report",
		Blocks:   markdown.Parse(markdown.Truncate(content, maxChars)),
	}
}

func taskStats(projectID string, tasks []domain.Task, now time.Time) (total, completed, inProgress, overdue int) {
	for _, t := range tasks {
		if t.ProjectID != projectID || t.Status == domain.TaskCancelled {
			continue
		}
		total++
		switch t.Status {
		case domain.TaskCompleted:
			completed++
			continue
		case domain.TaskInProgress:
			inProgress++
		}
		if t.DueDate != nil && t.DueDate.Before(now) {
			overdue++
		}
	}
	return
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
