package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

type RiskCmd struct {
	profilePath string
	projectID   string
}

func NewRiskCmd() *cobra.Command {
	rc := &RiskCmd{}
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Show the risk assessment for a project",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.profilePath, "profile", "", "Path to the configuration profile")
	cmd.Flags().StringVar(&rc.projectID, "project", "", "Project to assess")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func (rc *RiskCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	app, err := BuildApp(rc.profilePath)
	if err != nil {
		return err
	}

	projects, err := app.Source.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch projects: %w", err)
	}
	projects = filterProjects(projects, rc.projectID)
	if len(projects) == 0 {
		return fmt.Errorf("unknown project: %s", rc.projectID)
	}

	tasks, err := app.Source.ListTasks(ctx, rc.projectID)
	if err != nil {
		return fmt.Errorf("failed to fetch tasks: %w", err)
	}

	now := time.Now()
	assessment := app.Engine.RiskAssessment(projects[0], tasks, now)
	health := app.Engine.HealthScore(projects[0], tasks, now)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Project: %s\n", projects[0].Name)
	fmt.Fprintf(out, "Health:  %.0f/100\n", health.Score)
	fmt.Fprintf(out, "Risk:    %.0f/100 (%s)\n", assessment.Score, assessment.Level)
	for _, f := range assessment.Factors {
		fmt.Fprintf(out, "  - %s: +%.0f\n", f.Factor, f.Impact)
	}
	return nil
}
