package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-weathercfg/internal/corpus"
	"github.com/KimNorgaard/go-weathercfg/internal/logging"
)

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [dir]",
		Short: "Verify that every config survives a parse and render unchanged",
		Long: `Check parses and re-renders every config of the corpus directory and
reports files that fail to parse or whose rendering differs from the source.
Byte order marks, line endings and trailing newlines are not compared.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := optionalArg(args)
			if dir == "" {
				dir = a.settings.CorpusDir
			}
			opts := a.corpusOptions()
			names, err := corpus.Files(a.fs, dir, opts.Pattern)
			if err != nil {
				return err
			}
			mismatches, err := corpus.Verify(cmd.Context(), a.fs, dir, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, m := range mismatches {
				if m.Err != nil {
					logging.Error().Err(m.Err).Str("file", m.File).Msg("config does not parse")
					fmt.Fprintf(out, "%s: %v\n", m.File, m.Err)
					continue
				}
				fmt.Fprint(out, m.Diff.Format(m.File))
			}
			if len(mismatches) > 0 {
				return fmt.Errorf("weathercfg: %d of %d files do not round-trip", len(mismatches), len(names))
			}
			fmt.Fprintf(out, "%d files round-trip unchanged\n", len(names))
			return nil
		},
	}
}
