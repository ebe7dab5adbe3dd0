package weathercfg_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	weathercfg "github.com/KimNorgaard/go-weathercfg"
	"github.com/KimNorgaard/go-weathercfg/ast"
)

func FuzzRoundTrip(f *testing.F) {
	// Seed the corpus with the files from the testdata directory.
	seedFiles, err := filepath.Glob("testdata/*.cfg")
	if err != nil {
		f.Fatalf("failed to find seed files: %v", err)
	}
	for _, file := range seedFiles {
		data, err := os.ReadFile(file)
		if err != nil {
			f.Fatalf("failed to read seed file %s: %v", file, err)
		}
		f.Add(data)
	}

	f.Add([]byte(""))
	f.Add([]byte("A : struct.begin"))
	f.Add([]byte("A : struct.begin\n   B = 1.5f\n   C: struct.begin\n      D = -0.f\n   struct.end\nstruct.end"))
	f.Add([]byte("[0] : struct.begin {refkey=x}\n   Priority = +3\nstruct.end"))

	f.Fuzz(func(t *testing.T, data []byte) {
		// 1. Most inputs are not valid configs; only panics matter there.
		cfg, err := weathercfg.Parse(data)
		if err != nil {
			return
		}

		// 2. Every parsed config renders.
		first, err := weathercfg.Render(cfg)
		require.NoError(t, err, "Render failed for a successfully parsed config")

		// 3. The rendering parses back into the same model, apart from
		// fields the layout does not write.
		again, err := weathercfg.Parse([]byte(first))
		require.NoError(t, err, "Parse failed on our own rendering")

		// 4. Rendering is a fixed point.
		second, err := weathercfg.Render(again)
		require.NoError(t, err)
		require.Equal(t, first, second)

		dropUnwritten(cfg)
		if diff := cmp.Diff(cfg, again, cmp.AllowUnexported(ast.Config{})); diff != "" {
			t.Fatalf("model changed across a render (-first +second):\n%s", diff)
		}
	})
}

// dropUnwritten removes the weather fields the default layout never writes.
func dropUnwritten(cfg *ast.Config) {
	written := map[string]bool{}
	for _, f := range []string{
		"BlendWeight", "BlendWeightIncrease", "WeatherDurationMin", "WeatherDurationMax",
		"MaximumRepeatAmount", "MaximumCooldownWeatherAmount", "bAllowInDialogueTransition",
	} {
		written[f] = true
	}
	for _, w := range cfg.Weathers() {
		for name := range w.Params {
			if !written[name] {
				delete(w.Params, name)
			}
		}
	}
}
