package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTeamsCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "List configured teams and their contracted hours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			settings, err := cfg.Validate()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TEAM\tCONTRACTED HOURS\tCONTRACTED DAYS\tSHIFT HOURS")
			for _, t := range settings.Teams.All() {
				fmt.Fprintf(w, "%s\t%g\t%d\t%g\n", t.Name, t.ContractedHours, t.ContractedDays, t.ShiftHours)
			}
			return w.Flush()
		},
	}
}
