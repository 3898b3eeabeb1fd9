package store

import "time"

// AIReport is a persisted generated report.
type AIReport struct {
	ID          int64
	TenantID    string
	Subject     string // the question asked or the project ID covered
	Content     string
	GeneratedBy string
	ContextData string // JSON blob of the data the answer was grounded on
	CreatedAt   time.Time
}
