package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	weathercfg "github.com/KimNorgaard/go-weathercfg"
	"github.com/KimNorgaard/go-weathercfg/internal/diff"
)

func newDiffCommand(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "diff [patch-file]",
		Short: "Show the lines a patch file changes in the combined config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			original, patched, err := a.patched(cmd, dir, optionalArg(args))
			if err != nil {
				return err
			}
			before, err := weathercfg.RenderAll(original)
			if err != nil {
				return err
			}
			after, err := weathercfg.RenderAll(patched)
			if err != nil {
				return err
			}

			d := diff.Compute(before, after)
			out := cmd.OutOrStdout()
			fmt.Fprint(out, d.Format(a.settings.OutputPath))
			fmt.Fprintf(out, "%d lines added, %d lines removed\n", d.Added, d.Removed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "corpus directory (default from settings)")
	return cmd
}
