package cli

import (
	"github.com/spf13/cobra"
)

// SpellsOptions holds flags for the update-spells command.
type SpellsOptions struct {
	*RootOptions
	MagicPath string
}

// NewUpdateSpellsCommand creates the update-spells command.
func NewUpdateSpellsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SpellsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update-spells <game-dir>",
		Short: "Ingest the spell table, spell teachers and rune sellers",
		Long: `Scans the spell table (<game-dir>/src/magic.cc, <game-dir>/magic.cc
or the --magic-cc override) for spell definitions, then reads spell
teaching and rune/wand/rod selling data from the .npc scripts under
<game-dir>/npc. A missing spell table skips that pass; the NPC passes
still run.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, cleanup, err := rootOpts.openRunner()
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := r.Spells(cmd.Context(), args[0], opts.MagicPath)
			if err != nil {
				return stageError("update-spells", err)
			}
			printSummary(cmd, "update-spells", summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.MagicPath, "magic-cc", "", "explicit path to the spell table source")

	return cmd
}
