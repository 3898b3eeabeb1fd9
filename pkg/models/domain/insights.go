package domain

import "time"

// GroupSummary is one bucket produced by the grouping contract.
// Entries are retained so totals can be reconciled against the
// unfiltered source collection.
type GroupSummary struct {
	Name          string
	Hours         float64
	BillableHours float64
	Amount        float64
	Entries       []TimeEntry
}

type MarginStatus string

const (
	MarginHealthy MarginStatus = "healthy"
	MarginWarning MarginStatus = "warning"
	MarginRisk    MarginStatus = "risk"
	MarginLoss    MarginStatus = "loss"
)

// ProjectProfitability is a per-project revenue/cost breakdown.
// TotalCost == LaborCost + NonLaborCost and Profit == Revenue - TotalCost
// hold for every row.
type ProjectProfitability struct {
	ProjectID        string
	ProjectName      string
	Currency         string
	Revenue          float64
	LaborCost        float64
	NonLaborCost     float64
	TotalCost        float64
	Profit           float64
	MarginPercent    float64
	Status           MarginStatus
	Leakage          bool // negative margin
	CostApproximate  bool // a currency conversion fell back to raw amounts
	BillableMinutes  float64
	LastSnapshotRate float64
}

type HealthScore struct {
	ProjectID string
	Score     float64 // clamped [0,100]
}

type RiskFactor struct {
	Factor string
	Impact float64
}

type RiskAssessment struct {
	ProjectID string
	Score     float64 // additive, capped at 100
	Level     RiskLevel
	Factors   []RiskFactor // insertion order, consumers take the top few
}

type ForecastConfidence string

const (
	ConfidenceHigh   ForecastConfidence = "high"
	ConfidenceMedium ForecastConfidence = "medium"
	ConfidenceLow    ForecastConfidence = "low"
)

type ScheduleStatus string

const (
	ScheduleCritical   ScheduleStatus = "critical"
	ScheduleAtRisk     ScheduleStatus = "at_risk"
	ScheduleTight      ScheduleStatus = "tight"
	ScheduleModerate   ScheduleStatus = "moderate"
	ScheduleOnTrack    ScheduleStatus = "on_track"
	ScheduleNoDeadline ScheduleStatus = "no_deadline"
)

type TimelineForecast struct {
	ProjectID      string
	Velocity       float64 // tasks per day, blended
	EstimatedDays  float64
	EstimatedDate  time.Time
	BufferDays     float64
	Confidence     ForecastConfidence
	Status         ScheduleStatus
	RemainingTasks int
}

type WorkloadStatus string

const (
	WorkloadOverloaded    WorkloadStatus = "overloaded"
	WorkloadHigh          WorkloadStatus = "high"
	WorkloadOptimal       WorkloadStatus = "optimal"
	WorkloadUnderutilized WorkloadStatus = "underutilized"
)

type UserUtilization struct {
	Email          string
	Name           string
	EstimatedHours float64 // shared tasks split evenly across assignees
	ActiveTasks    int
	Status         WorkloadStatus
}

type UtilizationSummary struct {
	Users            []UserUtilization
	TotalActiveTasks int // deduplicated by task ID
}
