package adapters

import (
	"github.com/quantamisecode-hub/groona-insights/pkg/models/api"
	"github.com/quantamisecode-hub/groona-insights/pkg/models/domain"
)

func MapProfitabilityDomainToAPI(row domain.ProjectProfitability) api.ProjectProfitability {
	return api.ProjectProfitability{
		ProjectID:       row.ProjectID,
		ProjectName:     row.ProjectName,
		Currency:        row.Currency,
		Revenue:         row.Revenue,
		LaborCost:       row.LaborCost,
		NonLaborCost:    row.NonLaborCost,
		TotalCost:       row.TotalCost,
		Profit:          row.Profit,
		MarginPercent:   row.MarginPercent,
		Status:          string(row.Status),
		Leakage:         row.Leakage,
		CostApproximate: row.CostApproximate,
	}
}

func MapHealthDomainToAPI(h domain.HealthScore) api.HealthScore {
	return api.HealthScore{ProjectID: h.ProjectID, Score: h.Score}
}

func MapRiskDomainToAPI(a domain.RiskAssessment) api.RiskAssessment {
	out := api.RiskAssessment{
		ProjectID: a.ProjectID,
		Score:     a.Score,
		Level:     string(a.Level),
		Factors:   make([]api.RiskFactor, 0, len(a.Factors)),
	}
	for _, f := range a.Factors {
		out.Factors = append(out.Factors, api.RiskFactor{Factor: f.Factor, Impact: f.Impact})
	}
	return out
}

func MapTimelineDomainToAPI(f domain.TimelineForecast) api.TimelineForecast {
	return api.TimelineForecast{
		ProjectID:      f.ProjectID,
		Velocity:       f.Velocity,
		EstimatedDays:  f.EstimatedDays,
		EstimatedDate:  f.EstimatedDate.Format("2006-01-02"),
		BufferDays:     f.BufferDays,
		Confidence:     string(f.Confidence),
		Status:         string(f.Status),
		RemainingTasks: f.RemainingTasks,
	}
}

func MapUtilizationDomainToAPI(s domain.UtilizationSummary) api.UtilizationSummary {
	out := api.UtilizationSummary{
		Users:            make([]api.UserUtilization, 0, len(s.Users)),
		TotalActiveTasks: s.TotalActiveTasks,
	}
	for _, u := range s.Users {
		out.Users = append(out.Users, api.UserUtilization{
			Email:          u.Email,
			Name:           u.Name,
			EstimatedHours: u.EstimatedHours,
			ActiveTasks:    u.ActiveTasks,
			Status:         string(u.Status),
		})
	}
	return out
}

func MapGroupSummaryDomainToAPI(g domain.GroupSummary) api.GroupSummary {
	return api.GroupSummary{
		Name:          g.Name,
		Hours:         g.Hours,
		BillableHours: g.BillableHours,
		Amount:        g.Amount,
		EntryCount:    len(g.Entries),
	}
}
