package cli

import (
	"github.com/klokku/overtime/internal/config"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
}

// NewRootCommand builds the overtime command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "overtime",
		Short:         "Turn timesheet exports into weekly and period overtime summaries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "path to the YAML configuration file")

	root.AddCommand(newReportCommand(opts))
	root.AddCommand(newServeCommand(opts))
	root.AddCommand(newTeamsCommand(opts))
	return root
}

func (o *rootOptions) load() (config.Application, error) {
	return config.Load(o.configPath)
}
