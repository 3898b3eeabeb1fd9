package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantamisecode-hub/groona-insights/pkg/runtime/terminal/export"
	"github.com/quantamisecode-hub/groona-insights/pkg/services/reportgen"
)

type UtilizationCmd struct {
	profilePath string
	reporter    *export.Reporter
}

func NewUtilizationCmd(reporter *export.Reporter) *cobra.Command {
	uc := &UtilizationCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "utilization",
		Short: "Report per-user workload across open tasks",
		RunE:  uc.run,
	}

	cmd.Flags().StringVar(&uc.profilePath, "profile", "", "Path to the configuration profile")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (uc *UtilizationCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	app, err := BuildApp(uc.profilePath)
	if err != nil {
		return err
	}

	tasks, err := app.Source.ListTasks(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to fetch tasks: %w", err)
	}
	users, err := app.Source.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch users: %w", err)
	}

	summary := app.Engine.Utilization(tasks, users)
	return uc.reporter.Handle(reportgen.ComposeUtilizationReport(summary, time.Now()))
}
