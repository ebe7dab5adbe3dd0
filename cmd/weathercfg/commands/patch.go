package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	weathercfg "github.com/KimNorgaard/go-weathercfg"
	"github.com/KimNorgaard/go-weathercfg/ast"
	"github.com/KimNorgaard/go-weathercfg/internal/corpus"
	"github.com/KimNorgaard/go-weathercfg/internal/logging"
	"github.com/KimNorgaard/go-weathercfg/patch"
)

func newPatchCommand(a *app) *cobra.Command {
	var dir, output string

	cmd := &cobra.Command{
		Use:   "patch [patch-file]",
		Short: "Apply a patch file and write the combined config",
		Long: `Patch parses every config of the corpus directory, applies the patch file
(JSON with comments, or YAML) and writes all configs, in file name order, to a
single UTF-8 file with a byte order mark and CRLF line endings.

The patch file defaults to patches.json.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = a.settings.OutputPath
			}
			_, patched, err := a.patched(cmd, dir, optionalArg(args))
			if err != nil {
				return err
			}
			text, err := weathercfg.RenderAll(patched)
			if err != nil {
				return err
			}
			if err := corpus.WriteCombined(a.fs, output, text); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Generated %d lines of config\n", strings.Count(text, "\n")+1)
			fmt.Fprintf(out, "Output saved to: %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "corpus directory (default from settings)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "combined output file (default from settings)")
	return cmd
}

// patched loads the corpus and the patch and returns the configs before and
// after patching. Problems the patch engine tolerates are logged.
func (a *app) patched(cmd *cobra.Command, dir, patchFile string) (original, patched []*ast.Config, err error) {
	p, name, err := a.loadPatch(patchFile)
	if err != nil {
		return nil, nil, err
	}
	original, err = a.loadCorpus(cmd.Context(), dir)
	if err != nil {
		return nil, nil, err
	}

	patched, rep := patch.ApplyWithReport(original, p)
	for _, c := range rep.Changes {
		logging.Debug().
			Str("file", c.File).
			Str("sid", c.SID).
			Str("weather", c.Weather).
			Str("field", c.Field).
			Stringer("old", c.Old).
			Stringer("new", c.New).
			Msg("patched field")
	}
	for _, m := range rep.MissingWeathers {
		logging.Warn().Str("sid", m.SID).Str("weather", m.Weather).Msg("patched weather type not present in config")
	}
	for _, sid := range rep.UnusedSIDs {
		logging.Warn().Str("sid", sid).Msg("patch entry matches no config")
	}
	logging.Info().Str("patch", name).Int("configs", len(original)).Int("changes", len(rep.Changes)).Msg("patch applied")
	return original, patched, nil
}
