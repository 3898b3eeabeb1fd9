package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/quantamisecode-hub/groona-insights/pkg/models/store"
	"github.com/quantamisecode-hub/groona-insights/pkg/store/duckdb"
)

const (
	// MaxContentBytes is the hard cap on stored report content.
	MaxContentBytes = 800 * 1024
	// RetryContentBytes is the smaller payload used for the single
	// retry after an oversize rejection.
	RetryContentBytes = 500 * 1024

	truncationNotice = "\n\n[report truncated to fit storage limits]"
)

// Store persists generated reports. Saves honor an ambient transaction
// placed on the context.
type Store interface {
	Save(ctx context.Context, rec store.AIReport) (id int64, truncated bool, err error)
	Get(ctx context.Context, id int64) (*store.AIReport, error)
	ListByTenant(ctx context.Context, tenantID string, limit int) ([]store.AIReport, error)
}

type reportStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &reportStore{db: db}, nil
}

// Save inserts the report. Content over the cap is truncated up front;
// if the insert still fails it is retried exactly once with the smaller
// payload before the error surfaces.
func (s *reportStore) Save(ctx context.Context, rec store.AIReport) (int64, bool, error) {
	truncated := false
	if len(rec.Content) > MaxContentBytes {
		rec.Content = truncate(rec.Content, MaxContentBytes)
		truncated = true
	}

	id, err := s.insert(ctx, rec)
	if err == nil {
		return id, truncated, nil
	}

	zerolog.Ctx(ctx).Warn().
		Err(err).
		Str("tenant", rec.TenantID).
		Msg("report save failed, retrying with truncated payload")

	rec.Content = truncate(rec.Content, RetryContentBytes)
	id, retryErr := s.insert(ctx, rec)
	if retryErr != nil {
		return 0, true, fmt.Errorf("failed to save report after truncated retry: %w", retryErr)
	}
	return id, true, nil
}

func (s *reportStore) insert(ctx context.Context, rec store.AIReport) (int64, error) {
	query := `
		INSERT INTO ai_reports (tenant_id, subject, content, generated_by, context_data, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	contextData := rec.ContextData
	if contextData == "" {
		contextData = "{}"
	}

	row := duckdb.QuerierFrom(ctx, s.db).QueryRowContext(ctx, query,
		rec.TenantID, rec.Subject, rec.Content, rec.GeneratedBy, contextData, createdAt)

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("insert report: %w", err)
	}
	return id, nil
}

func (s *reportStore) Get(ctx context.Context, id int64) (*store.AIReport, error) {
	query := `
		SELECT id, tenant_id, subject, content, generated_by, context_data, created_at
		FROM ai_reports WHERE id = ?`

	var rec store.AIReport
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.TenantID, &rec.Subject, &rec.Content,
		&rec.GeneratedBy, &rec.ContextData, &rec.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get report %d: %w", id, err)
	}
	return &rec, nil
}

func (s *reportStore) ListByTenant(ctx context.Context, tenantID string, limit int) ([]store.AIReport, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, tenant_id, subject, content, generated_by, context_data, created_at
		FROM ai_reports WHERE tenant_id = ?
		ORDER BY created_at DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports for %s: %w", tenantID, err)
	}
	defer rows.Close()

	var out []store.AIReport
	for rows.Next() {
		var rec store.AIReport
		err := rows.Scan(&rec.ID, &rec.TenantID, &rec.Subject, &rec.Content,
			&rec.GeneratedBy, &rec.ContextData, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func truncate(content string, max int) string {
	if len(content) <= max {
		return content
	}
	cut := max - len(truncationNotice)
	if cut < 0 {
		cut = 0
	}
	return content[:cut] + truncationNotice
}
