// Package commands implements the weathercfg command line.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	weathercfg "github.com/KimNorgaard/go-weathercfg"
	"github.com/KimNorgaard/go-weathercfg/ast"
	"github.com/KimNorgaard/go-weathercfg/internal/config"
	"github.com/KimNorgaard/go-weathercfg/internal/corpus"
	"github.com/KimNorgaard/go-weathercfg/internal/export"
	"github.com/KimNorgaard/go-weathercfg/internal/logging"
	"github.com/KimNorgaard/go-weathercfg/patch"
)

// app is the state shared by all subcommands.
type app struct {
	fs afero.Fs

	configPath string
	logLevel   string
	workers    int
	strict     bool
	legacy     bool

	settings config.Settings
}

// NewRootCommand builds the weathercfg command tree. All file access goes
// through fsys.
func NewRootCommand(fsys afero.Fs, version string) *cobra.Command {
	a := &app{fs: fsys}

	root := &cobra.Command{
		Use:   "weathercfg",
		Short: "Patch and inspect STALKER 2 weather selection configs",
		Long: `weathercfg reads a directory of weather selection .cfg files, applies
sparse patches keyed by SID and writes the combined file the game loads.

Everything a patch does not name is written back exactly as read.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: a.init,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "settings file (default "+config.DefaultFile+")")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.IntVar(&a.workers, "workers", 0, "files parsed in parallel")
	pf.BoolVar(&a.strict, "strict", false, "fail on lines that are not part of the format")
	pf.BoolVar(&a.legacy, "legacy-unclosed", false, "drop weather blocks left open at end of file instead of failing")

	root.AddCommand(
		newPatchCommand(a),
		newExportCommand(a),
		newDiffCommand(a),
		newCheckCommand(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command, _ []string) error {
	s, err := config.Load(a.fs, a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		s.LogLevel = a.logLevel
	}
	if flags.Changed("workers") {
		s.Workers = a.workers
	}
	if flags.Changed("strict") {
		s.Strict = a.strict
	}
	if flags.Changed("legacy-unclosed") {
		s.LegacyUnclosedBlocks = a.legacy
	}
	if err := s.Validate(); err != nil {
		return err
	}
	a.settings = s

	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(s.LogLevel)
	lc.Output = cmd.ErrOrStderr()
	logging.Init(lc)
	return nil
}

func (a *app) corpusOptions() corpus.Options {
	opts := corpus.Options{
		Pattern: a.settings.Pattern,
		Workers: a.settings.Workers,
	}
	if a.settings.Strict {
		opts.Parse = append(opts.Parse, weathercfg.Strict())
	}
	if a.settings.LegacyUnclosedBlocks {
		opts.Parse = append(opts.Parse, weathercfg.LegacyUnclosedBlocks())
	}
	return opts
}

func (a *app) loadCorpus(ctx context.Context, dir string) ([]*ast.Config, error) {
	if dir == "" {
		dir = a.settings.CorpusDir
	}
	cfgs, err := corpus.Load(ctx, a.fs, dir, a.corpusOptions())
	if err != nil {
		return nil, err
	}
	if len(cfgs) == 0 {
		return nil, fmt.Errorf("weathercfg: no files matching %q in %s", a.settings.Pattern, dir)
	}
	return cfgs, nil
}

// loadPatch reads the patch file, falling back to the configured one.
func (a *app) loadPatch(name string) (patch.Patch, string, error) {
	if name == "" {
		name = a.settings.PatchFile
	}
	if ok, err := afero.Exists(a.fs, name); err != nil {
		return nil, name, err
	} else if !ok {
		return nil, name, fmt.Errorf("weathercfg: patch file not found: %s", name)
	}
	p, err := patch.Load(a.fs, name)
	return p, name, err
}

func (a *app) selection() export.Selection {
	sel := export.DefaultSelection()
	if len(a.settings.Export.Weathers) > 0 {
		sel.Weathers = a.settings.Export.Weathers
	}
	if len(a.settings.Export.Fields) > 0 {
		sel.Fields = a.settings.Export.Fields
	}
	return sel
}

func optionalArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
