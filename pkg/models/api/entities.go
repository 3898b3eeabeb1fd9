package api

// Raw backend records. Optional fields are pointers so absence is
// distinguishable from zero; defaulting happens once, in the adapters,
// never in business logic.

type TimeEntry struct {
	Date               string   `json:"date"`
	ProjectID          *string  `json:"project_id"`
	UserEmail          *string  `json:"user_email"`
	TaskID             *string  `json:"task_id"`
	SprintID           *string  `json:"sprint_id"`
	TotalMinutes       *float64 `json:"total_minutes"`
	IsBillable         *bool    `json:"is_billable"`
	Status             *string  `json:"status"`
	HourlyRate         *float64 `json:"hourly_rate"`
	SnapshotRate       *float64 `json:"snapshot_rate"`
	SnapshotHourlyRate *float64 `json:"snapshot_hourly_rate"`
	RateCurrency       *string  `json:"rate_currency"`
}

type Project struct {
	ID                string   `json:"id"`
	Name              *string  `json:"name"`
	Status            *string  `json:"status"`
	Progress          *float64 `json:"progress"`
	Budget            *float64 `json:"budget"`
	ContractAmount    *float64 `json:"contract_amount"`
	RetainerAmount    *float64 `json:"retainer_amount"`
	EstimatedDuration *float64 `json:"estimated_duration"`
	DefaultBillRate   *float64 `json:"default_bill_rate_per_hour"`
	ActualCost        *float64 `json:"actual_cost"`
	Currency          *string  `json:"currency"`
	BillingModel      *string  `json:"billing_model"`
	Deadline          *string  `json:"deadline"`
	StartDate         *string  `json:"start_date"`
	RiskLevel         *string  `json:"risk_level"`
}

type Expense struct {
	ProjectID *string  `json:"project_id"`
	Amount    *float64 `json:"amount"`
	Currency  *string  `json:"currency"`
	Status    *string  `json:"status"`
	Date      *string  `json:"date"`
}

// Task.AssignedTo arrives either as a single email or an array; the
// adapter normalizes both forms.
type Task struct {
	ID             string   `json:"id"`
	ProjectID      *string  `json:"project_id"`
	Status         *string  `json:"status"`
	Priority       *string  `json:"priority"`
	AssignedTo     any      `json:"assigned_to"`
	DueDate        *string  `json:"due_date"`
	EstimatedHours *float64 `json:"estimated_hours"`
	CompletedAt    *string  `json:"completed_at"`
}

type User struct {
	Email        string   `json:"email"`
	Name         *string  `json:"name"`
	HourlyRate   *float64 `json:"hourly_rate"`
	RateCurrency *string  `json:"rate_currency"`
}

type ConversionResponse struct {
	Rate   float64 `json:"rate"`
	Result float64 `json:"result"`
}

type InsightRequest struct {
	Question    string         `json:"question"`
	ContextData map[string]any `json:"context_data,omitempty"`
}

type InsightResponse struct {
	Content string `json:"content"`
}
