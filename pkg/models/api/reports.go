package api

// Response DTOs for the reporting endpoints.

type ProjectProfitability struct {
	ProjectID       string  `json:"project_id"`
	ProjectName     string  `json:"project_name"`
	Currency        string  `json:"currency"`
	Revenue         float64 `json:"revenue"`
	LaborCost       float64 `json:"labor_cost"`
	NonLaborCost    float64 `json:"non_labor_cost"`
	TotalCost       float64 `json:"total_cost"`
	Profit          float64 `json:"profit"`
	MarginPercent   float64 `json:"margin_percent"`
	Status          string  `json:"status"`
	Leakage         bool    `json:"leakage"`
	CostApproximate bool    `json:"cost_approximate"`
}

type HealthScore struct {
	ProjectID string  `json:"project_id"`
	Score     float64 `json:"score"`
}

type RiskFactor struct {
	Factor string  `json:"factor"`
	Impact float64 `json:"impact"`
}

type RiskAssessment struct {
	ProjectID string       `json:"project_id"`
	Score     float64      `json:"score"`
	Level     string       `json:"level"`
	Factors   []RiskFactor `json:"factors"`
}

type TimelineForecast struct {
	ProjectID      string  `json:"project_id"`
	Velocity       float64 `json:"velocity"`
	EstimatedDays  float64 `json:"estimated_days"`
	EstimatedDate  string  `json:"estimated_date"`
	BufferDays     float64 `json:"buffer_days"`
	Confidence     string  `json:"confidence"`
	Status         string  `json:"status"`
	RemainingTasks int     `json:"remaining_tasks"`
}

type UserUtilization struct {
	Email          string  `json:"email"`
	Name           string  `json:"name"`
	EstimatedHours float64 `json:"estimated_hours"`
	ActiveTasks    int     `json:"active_tasks"`
	Status         string  `json:"status"`
}

type UtilizationSummary struct {
	Users            []UserUtilization `json:"users"`
	TotalActiveTasks int               `json:"total_active_tasks"`
}

type GroupSummary struct {
	Name          string  `json:"name"`
	Hours         float64 `json:"hours"`
	BillableHours float64 `json:"billable_hours"`
	Amount        float64 `json:"amount"`
	EntryCount    int     `json:"entry_count"`
}

type SaveReportRequest struct {
	TenantID    string         `json:"tenant_id"`
	Subject     string         `json:"subject"` // question or project ID
	Content     string         `json:"report_content"`
	GeneratedBy string         `json:"generated_by"`
	ContextData map[string]any `json:"context_data,omitempty"`
}

type SaveReportResponse struct {
	ID        int64 `json:"id"`
	Truncated bool  `json:"truncated"`
}
