package cli

import (
	"github.com/spf13/cobra"
)

// NewUpdateQuestOverviewCommand creates the update-quest-overview command.
func NewUpdateQuestOverviewCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update-quest-overview <game-dir>",
		Short: "Ingest quest chests from map sector files",
		Long: `Scans every .sec file under <game-dir>/map for quest chests and
upserts them as quests, with world coordinates derived from the sector
filename. Tutorial-area quest numbers are excluded.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, cleanup, err := rootOpts.openRunner()
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := r.QuestOverview(cmd.Context(), args[0])
			if err != nil {
				return stageError("update-quest-overview", err)
			}
			printSummary(cmd, "update-quest-overview", summary)
			return nil
		},
	}
}
