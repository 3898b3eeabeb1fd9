package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantamisecode-hub/groona-insights/pkg/models/domain"
	"github.com/quantamisecode-hub/groona-insights/pkg/runtime/terminal/export"
	"github.com/quantamisecode-hub/groona-insights/pkg/services/reportgen"
)

type ProfitabilityCmd struct {
	profilePath string
	projectID   string
	duration    int
	reporter    *export.Reporter
}

func NewProfitabilityCmd(reporter *export.Reporter) *cobra.Command {
	pc := &ProfitabilityCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "profitability",
		Short: "Report per-project revenue, cost and margin",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.profilePath, "profile", "", "Path to the configuration profile")
	cmd.Flags().StringVar(&pc.projectID, "project", "", "Limit the report to one project")
	cmd.Flags().IntVar(&pc.duration, "duration", 90, "Duration in days to analyze")

	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (pc *ProfitabilityCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	app, err := BuildApp(pc.profilePath)
	if err != nil {
		return err
	}

	projects, err := app.Source.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch projects: %w", err)
	}
	if pc.projectID != "" {
		projects = filterProjects(projects, pc.projectID)
		if len(projects) == 0 {
			return fmt.Errorf("unknown project: %s", pc.projectID)
		}
	}

	end := time.Now()
	start := end.AddDate(0, 0, -pc.duration)

	entries, err := app.Source.ListTimeEntries(ctx, start, end)
	if err != nil {
		return fmt.Errorf("failed to fetch time entries: %w", err)
	}
	expenses, err := app.Source.ListExpenses(ctx, pc.projectID)
	if err != nil {
		return fmt.Errorf("failed to fetch expenses: %w", err)
	}
	users, err := app.Source.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch users: %w", err)
	}

	rows := app.Engine.ProfitabilityAll(ctx, projects, entries, expenses, users)
	return pc.reporter.Handle(reportgen.ComposeProfitabilityReport(rows, start, end))
}

func filterProjects(projects []domain.Project, id string) []domain.Project {
	for _, p := range projects {
		if p.ID == id {
			return []domain.Project{p}
		}
	}
	return nil
}
