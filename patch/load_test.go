package patch_test

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-weathercfg/ast"
	"github.com/KimNorgaard/go-weathercfg/errors"
	"github.com/KimNorgaard/go-weathercfg/patch"
)

func TestLoadJSON(t *testing.T) {
	fsys := afero.NewMemMapFs()
	src := `{
  // comments are allowed
  "VortexWeatherSelection": {
    "Clearly": {
      "BlendWeight": 80.0,
      "MaximumRepeatAmount": 2,
      "bAllowInDialogueTransition": true,
    },
  },
}`
	require.NoError(t, afero.WriteFile(fsys, "patches.json", []byte(src), 0o644))

	p, err := patch.Load(fsys, "patches.json")
	require.NoError(t, err)
	require.Equal(t, patch.Fields{
		"BlendWeight":                ast.Float(80),
		"MaximumRepeatAmount":        ast.Int(2),
		"bAllowInDialogueTransition": ast.Bool(true),
	}, p["VortexWeatherSelection"]["Clearly"])
}

func TestLoadYAML(t *testing.T) {
	fsys := afero.NewMemMapFs()
	src := `VortexWeatherSelection:
  Cloudy:
    BlendWeight: 20.0
    MaximumCooldownWeatherAmount: 1
    Note: keep
`
	require.NoError(t, afero.WriteFile(fsys, "patches.yml", []byte(src), 0o644))

	p, err := patch.Load(fsys, "patches.yml")
	require.NoError(t, err)
	require.Equal(t, patch.Fields{
		"BlendWeight":                  ast.Float(20),
		"MaximumCooldownWeatherAmount": ast.Int(1),
		"Note":                         ast.String("keep"),
	}, p["VortexWeatherSelection"]["Cloudy"])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := patch.Load(afero.NewMemMapFs(), "nope.json")
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading patch")
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format patch.Format
		kind   error
	}{
		{"nested object as value", `{"A": {"B": {"C": {"D": 1}}}}`, patch.JSON, errors.ErrUnsupportedValueKind},
		{"array value", `{"A": {"B": {"C": [1, 2]}}}`, patch.JSON, errors.ErrUnsupportedValueKind},
		{"null value", `{"A": {"B": {"C": null}}}`, patch.JSON, errors.ErrUnsupportedValueKind},
		{"wrong shape", `{"A": 1}`, patch.JSON, nil},
		{"invalid yaml", "A: [", patch.YAML, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := patch.Decode(strings.NewReader(tt.input), tt.format)
			require.Error(t, err)
			if tt.kind != nil {
				require.ErrorIs(t, err, tt.kind)
			}
		})
	}
}

func TestFormatOf(t *testing.T) {
	require.Equal(t, patch.YAML, patch.FormatOf("a/b.YAML"))
	require.Equal(t, patch.YAML, patch.FormatOf("b.yml"))
	require.Equal(t, patch.JSON, patch.FormatOf("b.json"))
	require.Equal(t, patch.JSON, patch.FormatOf("b.jsonc"))
	require.Equal(t, patch.JSON, patch.FormatOf("patches"))
}
