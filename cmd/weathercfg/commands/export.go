package commands

import (
	"bytes"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-weathercfg/internal/export"
)

func newExportCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export reduced views of the weather configs",
	}
	cmd.AddCommand(newExportYAMLCommand(a), newExportTableCommand(a))
	return cmd
}

func newExportYAMLCommand(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "yaml [dir]",
		Short: "Write the selected weather fields of a corpus as YAML",
		Long: `Yaml writes one entry per config SID holding the selected weather types
and fields. Weather types with a zero BlendWeight, cooldowns of zero and
configs left empty are left out.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgs, err := a.loadCorpus(cmd.Context(), optionalArg(args))
			if err != nil {
				return err
			}
			view := export.NewView(cfgs, a.selection())

			if output == "" {
				return view.WriteYAML(cmd.OutOrStdout())
			}
			var buf bytes.Buffer
			if err := view.WriteYAML(&buf); err != nil {
				return err
			}
			if err := afero.WriteFile(a.fs, output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("weathercfg: writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of standard output")
	return cmd
}

func newExportTableCommand(a *app) *cobra.Command {
	var xlsx string

	cmd := &cobra.Command{
		Use:   "table <yaml-file>",
		Short: "Print a YAML export as a tab-separated table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.fs.Open(args[0])
			if err != nil {
				return fmt.Errorf("weathercfg: %w", err)
			}
			view, err := export.ReadView(f)
			f.Close()
			if err != nil {
				return err
			}

			table := export.NewTable(view, a.selection())
			if xlsx != "" {
				if err := writeWorkbook(a.fs, xlsx, table); err != nil {
					return err
				}
			}
			return table.WriteTSV(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&xlsx, "xlsx", "", "also write the table as an Excel workbook")
	return cmd
}

func writeWorkbook(fsys afero.Fs, name string, table export.Table) (err error) {
	f, err := fsys.Create(name)
	if err != nil {
		return fmt.Errorf("weathercfg: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return table.WriteXLSX(f)
}
