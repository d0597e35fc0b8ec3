package cli

import (
	"github.com/spf13/cobra"
)

// NewUpdateCreaturesCommand creates the update-creatures command.
func NewUpdateCreaturesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update-creatures <game-dir>",
		Short: "Ingest creature stats and loot from .mon files",
		Long: `Decodes every .mon file under <game-dir>/mon and upserts creature
stats and loot tables into the database. Loot chances outside the valid
range are dropped row by row and reported; files that fail to decode are
skipped and listed in the summary.

Example:
  demonax update-creatures --database ./demonax.sqlite /srv/game`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, cleanup, err := rootOpts.openRunner()
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := r.Creatures(cmd.Context(), args[0])
			if err != nil {
				return stageError("update-creatures", err)
			}
			printSummary(cmd, "update-creatures", summary)
			return nil
		},
	}
}
