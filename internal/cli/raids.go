package cli

import (
	"github.com/spf13/cobra"
)

// NewUpdateRaidsCommand creates the update-raids command.
func NewUpdateRaidsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update-raids <game-dir>",
		Short: "Ingest raid events from .evt files",
		Long: `Decodes every .evt file under <game-dir>/mon into raid definitions:
kind (cyclic or one-time), interval, announcement messages and the
ordered spawn composition.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, cleanup, err := rootOpts.openRunner()
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := r.Raids(cmd.Context(), args[0])
			if err != nil {
				return stageError("update-raids", err)
			}
			printSummary(cmd, "update-raids", summary)
			return nil
		},
	}
}
