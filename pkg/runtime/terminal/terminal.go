package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantamisecode-hub/groona-insights/pkg/runtime/terminal/commands"
	"github.com/quantamisecode-hub/groona-insights/pkg/runtime/terminal/export"
)

// CLI represents the command-line interface
type CLI struct {
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groona-insights",
		Short: "Project reporting and analytics tool",
	}

	cmd.AddCommand(commands.NewProfitabilityCmd(cli.reporter))
	cmd.AddCommand(commands.NewUtilizationCmd(cli.reporter))
	cmd.AddCommand(commands.NewRiskCmd())
	cmd.AddCommand(commands.NewExportCmd())
	cmd.AddCommand(commands.NewAskCmd())

	return cmd
}
