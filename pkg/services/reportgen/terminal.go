package reportgen

import (
	"fmt"
	"time"

	"github.com/quantamisecode-hub/groona-insights/pkg/models/domain"
)

// ComposeProfitabilityReport shapes profitability rows into the
// section/detail report consumed by the terminal reporters.
func ComposeProfitabilityReport(rows []domain.ProjectProfitability, start, end time.Time) *domain.Report {
	report := &domain.Report{
		Title: "Project Profitability",
		Period: domain.TimePeriod{
			Start:    start,
			End:      end,
			Duration: int(end.Sub(start).Hours() / 24),
		},
	}

	for _, row := range rows {
		report.TotalAmount += row.Profit
		if report.Currency == "" {
			report.Currency = row.Currency
		}

		section := domain.ReportSection{
			Title: row.ProjectName,
			Summary: map[string]interface{}{
				"Margin": fmt.Sprintf("%.1f%% (%s)", row.MarginPercent, row.Status),
			},
			Details: []domain.ReportDetail{
				{Name: "Revenue", Value: fmt.Sprintf("%.2f", row.Revenue), Unit: row.Currency},
				{Name: "Labor Cost", Value: fmt.Sprintf("%.2f", row.LaborCost), Unit: row.Currency},
				{Name: "Non-Labor Cost", Value: fmt.Sprintf("%.2f", row.NonLaborCost), Unit: row.Currency,
					Description: approximationNote(row)},
				{Name: "Total Cost", Value: fmt.Sprintf("%.2f", row.TotalCost), Unit: row.Currency},
				{Name: "Profit", Value: fmt.Sprintf("%.2f", row.Profit), Unit: row.Currency},
			},
		}
		report.Sections = append(report.Sections, section)
	}

	return report
}

// ComposeUtilizationReport shapes the workload summary for terminal output.
func ComposeUtilizationReport(summary domain.UtilizationSummary, now time.Time) *domain.Report {
	report := &domain.Report{
		Title: "Resource Utilization",
		Period: domain.TimePeriod{
			Start: now, End: now,
		},
	}

	section := domain.ReportSection{
		Title: "Workload",
		Summary: map[string]interface{}{
			"Active Tasks": summary.TotalActiveTasks,
		},
	}
	for _, u := range summary.Users {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        u.Email,
			Value:       fmt.Sprintf("%.1f", u.EstimatedHours),
			Unit:        "hours",
			Description: fmt.Sprintf("%d active tasks, %s", u.ActiveTasks, u.Status),
		})
	}
	report.Sections = append(report.Sections, section)
	return report
}

func approximationNote(row domain.ProjectProfitability) string {
	if row.CostApproximate {
		return "includes unconverted foreign-currency amounts"
	}
	return ""
}
