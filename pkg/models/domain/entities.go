package domain

import "time"

type TimeEntryStatus string

const (
	TimeEntryDraft     TimeEntryStatus = "draft"
	TimeEntrySubmitted TimeEntryStatus = "submitted"
	TimeEntryApproved  TimeEntryStatus = "approved"
	TimeEntryRejected  TimeEntryStatus = "rejected"
)

type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
)

type BillingModel string

const (
	BillingFixedPrice       BillingModel = "fixed_price"
	BillingRetainer         BillingModel = "retainer"
	BillingTimeAndMaterials BillingModel = "time_and_materials"
	BillingNonBillable      BillingModel = "non_billable"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskReview     TaskStatus = "review"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// TimeEntry is one logged unit of work as delivered by the backend.
// Optional relations are plain strings; empty means unassigned and is
// mapped to a sentinel bucket during grouping, never dropped.
type TimeEntry struct {
	Date               time.Time
	ProjectID          string
	UserEmail          string
	TaskID             string
	SprintID           string
	TotalMinutes       float64
	IsBillable         bool
	Status             TimeEntryStatus
	HourlyRate         float64
	SnapshotRate       float64
	SnapshotHourlyRate float64
	RateCurrency       string
}

type Project struct {
	ID                string
	Name              string
	Status            ProjectStatus
	Progress          float64 // 0-100, clamped before scoring
	Budget            float64
	ContractAmount    float64
	RetainerAmount    float64
	EstimatedDuration float64 // hours, used for T&M revenue
	DefaultBillRate   float64
	ActualCost        float64
	Currency          string
	BillingModel      BillingModel
	Deadline          *time.Time
	StartDate         *time.Time
	RiskLevel         RiskLevel
}

type Expense struct {
	ProjectID string
	Amount    float64
	Currency  string
	Status    string // only "approved" contributes to cost aggregates
	Date      time.Time
}

type Task struct {
	ID             string
	ProjectID      string
	Status         TaskStatus
	Priority       string
	AssignedTo     []string
	DueDate        *time.Time
	EstimatedHours float64
	CompletedAt    *time.Time
}

type User struct {
	Email        string
	Name         string
	HourlyRate   float64
	RateCurrency string
}
