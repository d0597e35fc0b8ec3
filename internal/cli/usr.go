package cli

import (
	"github.com/spf13/cobra"
)

// NewProcessUsrCommand creates the process-usr command.
func NewProcessUsrCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "process-usr <usr-dir>",
		Short: "Ingest player snapshots from .usr files",
		Long: `Decodes every .usr file under <usr-dir> into a daily player snapshot
(level, experience, skills, equipment, quest flags, bestiary and
skinning tallies). A snapshot that already exists for the same player
and date is replaced, so the later-processed file wins.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, cleanup, err := rootOpts.openRunner()
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := r.ProcessUsr(cmd.Context(), args[0])
			if err != nil {
				return stageError("process-usr", err)
			}
			printSummary(cmd, "process-usr", summary)
			return nil
		},
	}
}
