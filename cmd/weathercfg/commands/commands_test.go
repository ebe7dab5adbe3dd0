package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-weathercfg/internal/corpus"
	"github.com/KimNorgaard/go-weathercfg/internal/testutil"
)

const patchJSON = `{
  "VortexWeatherSelection": {
    "Clearly": {"BlendWeight": 80.0},
    "Missing": {"BlendWeight": 1.0}
  },
  "NoSuchSelection": {}
}`

func run(t *testing.T, fsys afero.Fs, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand(fsys, "test")
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func sampleFs(t *testing.T) afero.Fs {
	t.Helper()
	fsys, err := testutil.CorpusFs()
	require.NoError(t, err)
	return fsys
}

func TestPatchMissingFile(t *testing.T) {
	_, _, err := run(t, sampleFs(t), "patch")
	require.Error(t, err)
	require.Contains(t, err.Error(), "patch file not found: patches.json")
}

func TestPatch(t *testing.T) {
	fsys := sampleFs(t)
	require.NoError(t, afero.WriteFile(fsys, "patches.json", []byte(patchJSON), 0o644))

	stdout, stderr, err := run(t, fsys, "patch")
	require.NoError(t, err)
	require.Equal(t, "Generated 38 lines of config\nOutput saved to: config/patched_combined.cfg\n", stdout)
	require.Contains(t, stderr, "patched weather type not present in config")
	require.Contains(t, stderr, "NoSuchSelection")

	data, err := afero.ReadFile(fsys, "config/patched_combined.cfg")
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("\xef\xbb\xbfVortexWeatherSelection : struct.begin\r\n")))
	require.True(t, bytes.HasSuffix(data, []byte("   struct.end\r\nstruct.end\r\n")))

	text := corpus.Normalize(data)
	require.Contains(t, text, "   Clearly : struct.begin\n      BlendWeight = 80.f\n      WeatherDurationMin = 600.f\n")
	require.Contains(t, text, "   Underground: struct.begin\n")
	require.NotContains(t, text, "Missing")
}

func TestPatchExplicitFileAndOutput(t *testing.T) {
	fsys := sampleFs(t)
	require.NoError(t, afero.WriteFile(fsys, "tweaks.yaml", []byte("SwampWeatherSelection:\n  Stormy:\n    MaximumRepeatAmount: 4\n"), 0o644))

	_, _, err := run(t, fsys, "patch", "tweaks.yaml", "-o", "out/combined.cfg")
	require.NoError(t, err)

	data, err := afero.ReadFile(fsys, "out/combined.cfg")
	require.NoError(t, err)
	require.Contains(t, corpus.Normalize(data), "      MaximumRepeatAmount = 4\n      MaximumCooldownWeatherAmount = 3\n")
}

func TestDiff(t *testing.T) {
	fsys := sampleFs(t)
	require.NoError(t, afero.WriteFile(fsys, "patches.json", []byte(patchJSON), 0o644))

	stdout, _, err := run(t, fsys, "diff")
	require.NoError(t, err)
	require.Contains(t, stdout, "@@ -6 +6 @@\n-      BlendWeight = 50.f\n+      BlendWeight = 80.f\n")
	require.True(t, strings.HasSuffix(stdout, "1 lines added, 1 lines removed\n"))

	ok, err := afero.Exists(fsys, "config/patched_combined.cfg")
	require.NoError(t, err)
	require.False(t, ok, "diff must not write the output file")
}

func TestExportYAMLAndTable(t *testing.T) {
	fsys := sampleFs(t)

	stdout, _, err := run(t, fsys, "export", "yaml", testutil.CorpusDir)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stdout, "VortexWeatherSelection:\n  Clearly:\n    BlendWeight: 50.0\n"))

	_, _, err = run(t, fsys, "export", "yaml", "-o", "weather.yml")
	require.NoError(t, err)

	stdout, _, err = run(t, fsys, "export", "table", "weather.yml", "--xlsx", "weather.xlsx")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "Region\tClearly_BlendWeight\t"))
	require.True(t, strings.HasPrefix(lines[1], "VortexWeatherSelection\t50.0\t600.0\t1200.0\t2\t\t30.0\t"))

	ok, err := afero.Exists(fsys, "weather.xlsx")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestExportTableMissingFile(t *testing.T) {
	_, _, err := run(t, sampleFs(t), "export", "table", "nope.yml")
	require.Error(t, err)
}

func TestCheck(t *testing.T) {
	fsys := sampleFs(t)

	stdout, _, err := run(t, fsys, "check")
	require.NoError(t, err)
	require.Equal(t, "2 files round-trip unchanged\n", stdout)

	require.NoError(t, afero.WriteFile(fsys, testutil.CorpusDir+"/c_open.cfg",
		[]byte("C : struct.begin\n   SID = C\n   Clearly : struct.begin\n      BlendWeight = 1.f\n"), 0o644))

	stdout, stderr, err := run(t, fsys, "check")
	require.Error(t, err)
	require.Contains(t, err.Error(), "1 of 3 files do not round-trip")
	require.Contains(t, stderr, "config does not parse")
	require.Contains(t, stdout, "c_open.cfg")
	require.Contains(t, stdout, "unclosed block")

	// The legacy behavior drops the open block, which still changes the file.
	_, _, err = run(t, fsys, "check", "--legacy-unclosed")
	require.Error(t, err)
}

func TestSettingsFile(t *testing.T) {
	fsys := sampleFs(t)
	require.NoError(t, afero.WriteFile(fsys, "alt.yaml", []byte("export:\n  weathers: [Stormy]\n  fields: [BlendWeight]\n"), 0o644))

	stdout, _, err := run(t, fsys, "--config", "alt.yaml", "export", "yaml")
	require.NoError(t, err)
	require.Equal(t, "SwampWeatherSelection:\n  Stormy:\n    BlendWeight: 10.0\n", stdout)

	_, _, err = run(t, fsys, "--workers", "0", "check")
	require.Error(t, err)
}
