package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/quantamisecode-hub/groona-insights/pkg/adapters"
	"github.com/quantamisecode-hub/groona-insights/pkg/models/api"
	"github.com/quantamisecode-hub/groona-insights/pkg/models/domain"
	"github.com/quantamisecode-hub/groona-insights/pkg/models/store"
	"github.com/quantamisecode-hub/groona-insights/pkg/render/csvexport"
	"github.com/quantamisecode-hub/groona-insights/pkg/render/pdf"
	"github.com/quantamisecode-hub/groona-insights/pkg/services/insights"
	"github.com/quantamisecode-hub/groona-insights/pkg/services/reportgen"
	"github.com/quantamisecode-hub/groona-insights/pkg/services/repository"
	reportstore "github.com/quantamisecode-hub/groona-insights/pkg/store/duckdb/report"
)

const defaultRangeDays = 90

const executiveQuestion = "Summarize this project's financial position, delivery risk and schedule outlook for an executive audience."

// InsightGenerator produces narrative report content from aggregated
// project context. The backend client is the canonical implementation.
type InsightGenerator interface {
	GenerateInsights(ctx context.Context, question string, contextData map[string]any) (string, error)
}

type Handler struct {
	source    repository.Source
	engine    *insights.Engine
	keys      insights.KeyRegistry
	generator InsightGenerator
	reports   reportstore.Store
}

func NewHandler(source repository.Source, engine *insights.Engine, generator InsightGenerator, reports reportstore.Store) *Handler {
	return &Handler{
		source:    source,
		engine:    engine,
		keys:      insights.NewKeyRegistry(),
		generator: generator,
		reports:   reports,
	}
}

func (h *Handler) GetProfitability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	projectID := chi.URLParam(r, "project")

	project, ok := h.findProject(w, r, projectID)
	if !ok {
		return
	}
	entries, err := h.source.ListTimeEntries(ctx, time.Time{}, time.Time{})
	if err != nil {
		h.fail(w, r, err, "failed to fetch time entries")
		return
	}
	expenses, err := h.source.ListExpenses(ctx, projectID)
	if err != nil {
		h.fail(w, r, err, "failed to fetch expenses")
		return
	}
	users, err := h.source.ListUsers(ctx)
	if err != nil {
		h.fail(w, r, err, "failed to fetch users")
		return
	}

	row := h.engine.Profitability(ctx, project, entries, expenses, users)
	if err := json.NewEncoder(w).Encode(adapters.MapProfitabilityDomainToAPI(row)); err != nil {
		logger.Error().Err(err).Str("project", projectID).Msg("failed to encode profitability")
	}
}

func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	projectID := chi.URLParam(r, "project")

	project, ok := h.findProject(w, r, projectID)
	if !ok {
		return
	}
	tasks, err := h.source.ListTasks(ctx, projectID)
	if err != nil {
		h.fail(w, r, err, "failed to fetch tasks")
		return
	}

	score := h.engine.HealthScore(project, tasks, time.Now())
	if err := json.NewEncoder(w).Encode(adapters.MapHealthDomainToAPI(score)); err != nil {
		logger.Error().Err(err).Str("project", projectID).Msg("failed to encode health score")
	}
}

func (h *Handler) GetRisk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	projectID := chi.URLParam(r, "project")

	project, ok := h.findProject(w, r, projectID)
	if !ok {
		return
	}
	tasks, err := h.source.ListTasks(ctx, projectID)
	if err != nil {
		h.fail(w, r, err, "failed to fetch tasks")
		return
	}

	assessment := h.engine.RiskAssessment(project, tasks, time.Now())
	if err := json.NewEncoder(w).Encode(adapters.MapRiskDomainToAPI(assessment)); err != nil {
		logger.Error().Err(err).Str("project", projectID).Msg("failed to encode risk assessment")
	}
}

func (h *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	projectID := chi.URLParam(r, "project")

	project, ok := h.findProject(w, r, projectID)
	if !ok {
		return
	}
	tasks, err := h.source.ListTasks(ctx, projectID)
	if err != nil {
		h.fail(w, r, err, "failed to fetch tasks")
		return
	}

	forecast := h.engine.TimelineForecast(project, tasks, time.Now())
	if err := json.NewEncoder(w).Encode(adapters.MapTimelineDomainToAPI(forecast)); err != nil {
		logger.Error().Err(err).Str("project", projectID).Msg("failed to encode timeline forecast")
	}
}

func (h *Handler) GetUtilization(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	tasks, err := h.source.ListTasks(ctx, "")
	if err != nil {
		h.fail(w, r, err, "failed to fetch tasks")
		return
	}
	users, err := h.source.ListUsers(ctx)
	if err != nil {
		h.fail(w, r, err, "failed to fetch users")
		return
	}

	summary := h.engine.Utilization(tasks, users)
	if err := json.NewEncoder(w).Encode(adapters.MapUtilizationDomainToAPI(summary)); err != nil {
		logger.Error().Err(err).Msg("failed to encode utilization")
	}
}

func (h *Handler) GetTimesheetGroups(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	by := r.URL.Query().Get("by")

	from, to := rangeFromQuery(r)
	entries, err := h.source.ListTimeEntries(ctx, from, to)
	if err != nil {
		h.fail(w, r, err, "failed to fetch time entries")
		return
	}

	projects, err := h.source.ListProjects(ctx)
	if err != nil {
		h.fail(w, r, err, "failed to fetch projects")
		return
	}
	gctx := insights.GroupingContext{Projects: projects}
	key, err := h.keys.Create(by, gctx)
	if err != nil {
		// unknown dimensions fall back to grouping by project
		key, _ = h.keys.Create("project", gctx)
	}

	groups := insights.GroupEntries(entries, key)
	response := make([]api.GroupSummary, 0, len(groups))
	for _, g := range groups {
		response = append(response, adapters.MapGroupSummaryDomainToAPI(g))
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Str("by", by).Msg("failed to encode timesheet groups")
	}
}

// ExportReport streams a project report as CSV or PDF.
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project")
	format := r.URL.Query().Get("format")

	project, ok := h.findProject(w, r, projectID)
	if !ok {
		return
	}

	switch format {
	case "csv":
		h.exportCSV(w, r, project)
	default:
		h.exportPDF(w, r, project)
	}
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request, project domain.Project) {
	ctx := r.Context()
	entries, err := h.source.ListTimeEntries(ctx, time.Time{}, time.Time{})
	if err != nil {
		h.fail(w, r, err, "failed to fetch time entries")
		return
	}

	rows := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		if e.ProjectID != project.ID {
			continue
		}
		rows = append(rows, map[string]any{
			"date":     e.Date.Format("2006-01-02"),
			"user":     e.UserEmail,
			"minutes":  e.TotalMinutes,
			"billable": e.IsBillable,
			"status":   string(e.Status),
		})
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", csvexport.Filename(time.Now())))
	if _, err := w.Write([]byte(csvexport.Export(rows))); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to write csv export")
	}
}

func (h *Handler) exportPDF(w http.ResponseWriter, r *http.Request, project domain.Project) {
	ctx := r.Context()

	entries, err := h.source.ListTimeEntries(ctx, time.Time{}, time.Time{})
	if err != nil {
		h.fail(w, r, err, "failed to fetch time entries")
		return
	}
	expenses, err := h.source.ListExpenses(ctx, project.ID)
	if err != nil {
		h.fail(w, r, err, "failed to fetch expenses")
		return
	}
	tasks, err := h.source.ListTasks(ctx, project.ID)
	if err != nil {
		h.fail(w, r, err, "failed to fetch tasks")
		return
	}
	users, err := h.source.ListUsers(ctx)
	if err != nil {
		h.fail(w, r, err, "failed to fetch users")
		return
	}

	now := time.Now()
	doc := reportgen.ComposeProjectReport(reportgen.ProjectReportInput{
		Project:       project,
		Profitability: h.engine.Profitability(ctx, project, entries, expenses, users),
		Health:        h.engine.HealthScore(project, tasks, now),
		Risk:          h.engine.RiskAssessment(project, tasks, now),
		Tasks:         tasks,
		Team:          teamFor(project.ID, tasks, users),
		GeneratedAt:   now,
	})

	renderer := pdf.NewRenderer(pdf.DefaultPreset())
	blob, err := renderer.RenderDocument(ctx, doc)
	if err != nil {
		h.fail(w, r, err, "failed to render pdf")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", pdf.ReportFilename(project.Name, now)))
	if _, err := w.Write(blob); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to write pdf export")
	}
}

// ExportAIReport asks the backend for a narrative summary of the
// project and renders it as a compressed single-page executive PDF.
func (h *Handler) ExportAIReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	projectID := chi.URLParam(r, "project")

	project, ok := h.findProject(w, r, projectID)
	if !ok {
		return
	}
	if h.generator == nil {
		http.Error(w, "insight generation is not configured", http.StatusServiceUnavailable)
		return
	}

	entries, err := h.source.ListTimeEntries(ctx, time.Time{}, time.Time{})
	if err != nil {
		h.fail(w, r, err, "failed to fetch time entries")
		return
	}
	expenses, err := h.source.ListExpenses(ctx, project.ID)
	if err != nil {
		h.fail(w, r, err, "failed to fetch expenses")
		return
	}
	tasks, err := h.source.ListTasks(ctx, project.ID)
	if err != nil {
		h.fail(w, r, err, "failed to fetch tasks")
		return
	}
	users, err := h.source.ListUsers(ctx)
	if err != nil {
		h.fail(w, r, err, "failed to fetch users")
		return
	}

	now := time.Now()
	profitability := h.engine.Profitability(ctx, project, entries, expenses, users)
	health := h.engine.HealthScore(project, tasks, now)
	risk := h.engine.RiskAssessment(project, tasks, now)
	forecast := h.engine.TimelineForecast(project, tasks, now)

	content, err := h.generator.GenerateInsights(ctx, executiveQuestion, map[string]any{
		"project":              project.Name,
		"status":               string(project.Status),
		"margin_percent":       profitability.MarginPercent,
		"health_score":         health.Score,
		"risk_level":           string(risk.Level),
		"estimated_completion": forecast.EstimatedDate.Format("2006-01-02"),
	})
	if err != nil {
		h.fail(w, r, err, "failed to generate insights")
		return
	}
	if content == "" {
		content = "No insights were generated for this period."
	}

	preset := pdf.CompressedPreset()
	doc := reportgen.ComposeAIReport(
		fmt.Sprintf("%s — Executive Summary", project.Name),
		"Groona Insights", content, now, preset.MaxChars)

	blob, err := pdf.NewRenderer(preset).RenderDocument(ctx, doc)
	if err != nil {
		h.fail(w, r, err, "failed to render pdf")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", pdf.ExecutiveReportFilename(project.Name, now)))
	if _, err := w.Write(blob); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to write ai report export")
	}
}

// ExportTimesheet renders the time entries of a range as a table PDF,
// one row per entry ordered by date then user.
func (h *Handler) ExportTimesheet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	from, to := rangeFromQuery(r)
	entries, err := h.source.ListTimeEntries(ctx, from, to)
	if err != nil {
		h.fail(w, r, err, "failed to fetch time entries")
		return
	}
	projects, err := h.source.ListProjects(ctx)
	if err != nil {
		h.fail(w, r, err, "failed to fetch projects")
		return
	}
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}

	rows := make([]pdf.TimesheetRow, 0, len(entries))
	for _, e := range entries {
		name := names[e.ProjectID]
		if name == "" {
			name = insights.UnassignedBucket
		}
		hours := float64(e.TotalMinutes) / 60
		if hours < 0 {
			hours = 0
		}
		rows = append(rows, pdf.TimesheetRow{
			Date:    e.Date.Format("2006-01-02"),
			User:    e.UserEmail,
			Project: name,
			Hours:   hours,
			Status:  e.Status,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].User < rows[j].User
	})

	now := time.Now()
	title := fmt.Sprintf("Timesheet %s — %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	blob, err := pdf.NewRenderer(pdf.DefaultPreset()).RenderTimesheet(ctx, title, rows)
	if err != nil {
		h.fail(w, r, err, "failed to render timesheet")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", pdf.ReportFilename("timesheet", now)))
	if _, err := w.Write(blob); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to write timesheet export")
	}
}

// SaveReport persists an AI-generated report for a tenant.
func (h *Handler) SaveReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.SaveReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.TenantID == "" || req.Content == "" {
		http.Error(w, "tenant_id and report_content are required", http.StatusBadRequest)
		return
	}

	contextData := "{}"
	if len(req.ContextData) > 0 {
		if buf, err := json.Marshal(req.ContextData); err == nil {
			contextData = string(buf)
		}
	}

	id, truncated, err := h.reports.Save(ctx, store.AIReport{
		TenantID:    req.TenantID,
		Subject:     req.Subject,
		Content:     req.Content,
		GeneratedBy: req.GeneratedBy,
		ContextData: contextData,
	})
	if err != nil {
		h.fail(w, r, err, "failed to persist report")
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(api.SaveReportResponse{ID: id, Truncated: truncated}); err != nil {
		logger.Error().Err(err).Msg("failed to encode save response")
	}
}

func (h *Handler) findProject(w http.ResponseWriter, r *http.Request, projectID string) (domain.Project, bool) {
	ctx := r.Context()
	projects, err := h.source.ListProjects(ctx)
	if err != nil {
		h.fail(w, r, err, "failed to fetch projects")
		return domain.Project{}, false
	}
	for _, p := range projects {
		if p.ID == projectID {
			return p, true
		}
	}
	http.Error(w, "project not found", http.StatusNotFound)
	return domain.Project{}, false
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	zerolog.Ctx(r.Context()).Error().Err(err).Msg(msg)
	http.Error(w, msg, http.StatusInternalServerError)
}

func rangeFromQuery(r *http.Request) (time.Time, time.Time) {
	parse := func(key string) time.Time {
		if v := r.URL.Query().Get(key); v != "" {
			if t, err := time.Parse("2006-01-02", v); err == nil {
				return t
			}
		}
		return time.Time{}
	}
	from, to := parse("from"), parse("to")
	if from.IsZero() && to.IsZero() {
		to = time.Now()
		from = to.AddDate(0, 0, -defaultRangeDays)
	}
	return from, to
}

// teamFor collects the users assigned to any of the project's tasks.
func teamFor(projectID string, tasks []domain.Task, users []domain.User) []domain.User {
	assigned := make(map[string]struct{})
	for _, t := range tasks {
		if t.ProjectID != projectID {
			continue
		}
		for _, email := range t.AssignedTo {
			assigned[email] = struct{}{}
		}
	}
	var team []domain.User
	for _, u := range users {
		if _, ok := assigned[u.Email]; ok {
			team = append(team, u)
		}
	}
	return team
}
