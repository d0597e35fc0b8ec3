package cli

import (
	"github.com/spf13/cobra"
)

// SkinningOptions holds flags for the update-skinning command.
type SkinningOptions struct {
	*RootOptions
	CSVPath     string
	MoveusePath string
}

// NewUpdateSkinningCommand creates the update-skinning command.
func NewUpdateSkinningCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SkinningOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update-skinning <game-dir>",
		Short: "Ingest skinning recipes from skinning.csv",
		Long: `Reads skinning recipes from <game-dir>/skinning.csv (falling back to
<game-dir>/dat/skinning.csv, or the --csv override) and upserts them.

With --moveuse-path the recipes are also rendered as MultiUse rule
pairs and spliced into that moveuse.dat in place.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, cleanup, err := rootOpts.openRunner()
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := r.Skinning(cmd.Context(), args[0], opts.CSVPath, opts.MoveusePath)
			if err != nil {
				return stageError("update-skinning", err)
			}
			printSummary(cmd, "update-skinning", summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.CSVPath, "csv", "", "explicit path to the skinning CSV")
	cmd.Flags().StringVar(&opts.MoveusePath, "moveuse-path", "", "moveuse.dat to splice generated rules into")

	return cmd
}
