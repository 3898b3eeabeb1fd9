package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantamisecode-hub/groona-insights/pkg/render/csvexport"
	"github.com/quantamisecode-hub/groona-insights/pkg/render/pdf"
	"github.com/quantamisecode-hub/groona-insights/pkg/services/reportgen"
)

type ExportCmd struct {
	profilePath string
	projectID   string
	format      string
	outPath     string
}

func NewExportCmd() *cobra.Command {
	ec := &ExportCmd{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a project report as CSV or PDF",
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.profilePath, "profile", "", "Path to the configuration profile")
	cmd.Flags().StringVar(&ec.projectID, "project", "", "Project to export")
	cmd.Flags().StringVar(&ec.format, "format", "pdf", "Output format: csv or pdf")
	cmd.Flags().StringVar(&ec.outPath, "out", "", "Output file (defaults to the standard report filename)")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 120*time.Second)
	defer cancel()

	app, err := BuildApp(ec.profilePath)
	if err != nil {
		return err
	}

	projects, err := app.Source.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch projects: %w", err)
	}
	projects = filterProjects(projects, ec.projectID)
	if len(projects) == 0 {
		return fmt.Errorf("unknown project: %s", ec.projectID)
	}
	project := projects[0]

	entries, err := app.Source.ListTimeEntries(ctx, time.Time{}, time.Time{})
	if err != nil {
		return fmt.Errorf("failed to fetch time entries: %w", err)
	}

	now := time.Now()
	switch ec.format {
	case "csv":
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
		path := ec.outPath
		if path == "" {
			path = csvexport.Filename(now)
		}
		if err := os.WriteFile(path, []byte(csvexport.Export(rows)), 0o644); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil

	case "pdf":
		expenses, err := app.Source.ListExpenses(ctx, project.ID)
		if err != nil {
			return fmt.Errorf("failed to fetch expenses: %w", err)
		}
		tasks, err := app.Source.ListTasks(ctx, project.ID)
		if err != nil {
			return fmt.Errorf("failed to fetch tasks: %w", err)
		}
		users, err := app.Source.ListUsers(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch users: %w", err)
		}

		doc := reportgen.ComposeProjectReport(reportgen.ProjectReportInput{
			Project:       project,
			Profitability: app.Engine.Profitability(ctx, project, entries, expenses, users),
			Health:        app.Engine.HealthScore(project, tasks, now),
			Risk:          app.Engine.RiskAssessment(project, tasks, now),
			Tasks:         tasks,
			GeneratedAt:   now,
		})

		blob, err := pdf.NewRenderer(pdf.DefaultPreset()).RenderDocument(ctx, doc)
		if err != nil {
			return fmt.Errorf("failed to render pdf: %w", err)
		}
		path := ec.outPath
		if path == "" {
			path = pdf.ReportFilename(project.Name, now)
		}
		if err := os.WriteFile(path, blob, 0o644); err != nil {
			return fmt.Errorf("failed to write pdf: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil

	default:
		return fmt.Errorf("unsupported format %q, expected csv or pdf", ec.format)
	}
}
