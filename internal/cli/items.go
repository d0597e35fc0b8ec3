package cli

import (
	"github.com/spf13/cobra"
)

// NewUpdateItemsCoreCommand creates the update-items-core command.
func NewUpdateItemsCoreCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update-items-core <game-dir>",
		Short: "Ingest the item catalog and NPC trade prices",
		Long: `Decodes the item catalog at <game-dir>/dat/objects.dat, keeping only
portable items, then reads buy and sell prices from the .npc scripts
under <game-dir>/npc. A missing catalog aborts the command; a missing
npc directory only skips the price pass.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, cleanup, err := rootOpts.openRunner()
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := r.ItemsCore(cmd.Context(), args[0])
			if err != nil {
				return stageError("update-items-core", err)
			}
			printSummary(cmd, "update-items-core", summary)
			return nil
		},
	}
}

// NewUpdateItemsQuestsCommand creates the update-items-quests command.
func NewUpdateItemsQuestsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update-items-quests",
		Short: "Cross-link items with the quests that reward them",
		Long: `Recomputes the rewarded_from column on items from the quests already
in the database. Run after update-items-core and update-quest-overview;
stale links from earlier runs are cleared first.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, cleanup, err := rootOpts.openRunner()
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := r.ItemsQuests(cmd.Context())
			if err != nil {
				return stageError("update-items-quests", err)
			}
			printSummary(cmd, "update-items-quests", summary)
			return nil
		},
	}
}
