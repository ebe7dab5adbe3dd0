package weathercfg_test

import (
	"bytes"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	weathercfg "github.com/KimNorgaard/go-weathercfg"
	"github.com/KimNorgaard/go-weathercfg/ast"
)

const scenario = `Test : struct.begin
   SID = Test
   Clearly : struct.begin
      BlendWeight = 50.f
   struct.end
struct.end`

func TestParseScenario(t *testing.T) {
	cfg, err := weathercfg.Parse([]byte(scenario))
	require.NoError(t, err)

	want := ast.NewConfig("Test")
	want.SID = "Test"
	clearly := ast.NewWeatherType("Clearly")
	clearly.Params["BlendWeight"] = ast.Float(50)
	require.True(t, want.AddWeatherType(clearly))

	if diff := cmp.Diff(want, cfg, cmp.AllowUnexported(ast.Config{})); diff != "" {
		t.Errorf("parsed config mismatch (-want +got):\n%s", diff)
	}
	require.Nil(t, cfg.Priority)

	out, err := weathercfg.Render(cfg)
	require.NoError(t, err)
	require.Equal(t, scenario, out)
}

func TestParseTopLevelFields(t *testing.T) {
	src := "[0] : struct.begin {refkey=[0]}\n" +
		"   SID = Swamp\n" +
		"   EmissionPrototypeSID = SwampEmission\n" +
		"   Priority = -2\n" +
		"   Note = a = b\n" +
		"   EmissionPrototypeSID = Replaced\n" +
		"struct.end\n"

	cfg, err := weathercfg.Parse([]byte(src))
	require.NoError(t, err)
	require.Equal(t, "[0]", cfg.ID)
	require.Equal(t, "[0]", cfg.RefKey)
	require.Equal(t, "Swamp", cfg.SID)
	require.NotNil(t, cfg.Priority)
	require.Equal(t, -2, *cfg.Priority)
	require.Equal(t, []ast.RawParam{
		{Name: "EmissionPrototypeSID", Value: "Replaced"},
		{Name: "Note", Value: "a = b"},
	}, cfg.ExtraParams())
	require.Empty(t, cfg.WeatherOrder)

	// Priority is written right after SID whatever its source position.
	out, err := weathercfg.Render(cfg)
	require.NoError(t, err)
	require.Equal(t, "[0] : struct.begin {refkey=[0]}\n"+
		"   SID = Swamp\n"+
		"   Priority = -2\n"+
		"   EmissionPrototypeSID = Replaced\n"+
		"   Note = a = b\n"+
		"struct.end", out)
}

func TestParseKeepsValuesMentioningKeywords(t *testing.T) {
	src := "[0] : struct.begin\n" +
		"   SID = Test\n" +
		"   Note = old struct.end marker\n" +
		"   Hint = a struct.begin b\n" +
		"struct.end"

	var warnings []string
	cfg, err := weathercfg.Parse([]byte(src),
		weathercfg.WarnFunc(func(_ string, _ int, msg string) { warnings = append(warnings, msg) }))
	require.NoError(t, err)
	require.Empty(t, warnings)

	out, err := weathercfg.Render(cfg)
	require.NoError(t, err)
	require.Equal(t, src, out)
}

func TestParseBOMAndCRLF(t *testing.T) {
	src := "\xef\xbb\xbf" + strings.ReplaceAll(scenario, "\n", "\r\n") + "\r\n"
	cfg, err := weathercfg.Parse([]byte(src))
	require.NoError(t, err)

	out, err := weathercfg.Render(cfg)
	require.NoError(t, err)
	require.Equal(t, scenario, out)
}

func TestParseWeatherOrder(t *testing.T) {
	names := []string{"Stormy", "Clearly", "Underground", "Rainy", "Cloudy"}
	var b strings.Builder
	b.WriteString("Order : struct.begin\n   SID = Order\n")
	for _, n := range names {
		b.WriteString("   " + n + " : struct.begin\n   struct.end\n")
	}
	b.WriteString("struct.end\n")

	cfg, err := weathercfg.Parse([]byte(b.String()))
	require.NoError(t, err)
	require.Equal(t, names, cfg.WeatherOrder)
	require.NoError(t, cfg.Validate())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  error
		line  int
	}{
		{"empty", "", weathercfg.ErrMalformedHeader, 0},
		{"no header", "   SID = A\n", weathercfg.ErrMalformedHeader, 1},
		{"block before header", "   Clearly : struct.begin\n   struct.end\n", weathercfg.ErrMalformedHeader, 1},
		{"second header", "A : struct.begin\nstruct.end\nB : struct.begin\nstruct.end\n", weathercfg.ErrMalformedHeader, 3},
		{"bad priority", "A : struct.begin\n   Priority = 1.5\nstruct.end\n", weathercfg.ErrMalformedPriority, 2},
		{"unclosed", "A : struct.begin\n   SID = A\n   Rainy : struct.begin\n", weathercfg.ErrUnclosedBlock, 3},
		{"nested", "A : struct.begin\n   Rainy : struct.begin\n      X : struct.begin\n", weathercfg.ErrNestedBlock, 3},
		{"duplicate", "A : struct.begin\n   R : struct.begin\n   struct.end\n   R : struct.begin\n   struct.end\nstruct.end\n", weathercfg.ErrDuplicateWeatherType, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := weathercfg.Parse([]byte(tt.input), weathercfg.Filename("bad.cfg"))
			require.Nil(t, cfg)
			require.ErrorIs(t, err, tt.kind)

			var perr *weathercfg.ParseError
			require.ErrorAs(t, err, &perr)
			require.Equal(t, tt.line, perr.Line)
			require.Equal(t, "bad.cfg", perr.File)
			require.True(t, strings.HasPrefix(err.Error(), "weathercfg: bad.cfg:"), err.Error())
		})
	}
}

func TestParseUnrecognizedLines(t *testing.T) {
	src := "A : struct.begin\n   SID = A\n   garbage here\n   Clearly : struct.begin\n      = no name\n   struct.end\nstruct.end\n"

	type warning struct {
		file string
		line int
	}
	var warnings []warning
	cfg, err := weathercfg.Parse([]byte(src),
		weathercfg.Filename("a.cfg"),
		weathercfg.WarnFunc(func(file string, line int, _ string) {
			warnings = append(warnings, warning{file, line})
		}))
	require.NoError(t, err)
	require.Equal(t, []string{"Clearly"}, cfg.WeatherOrder)
	require.Equal(t, []warning{{"a.cfg", 3}, {"a.cfg", 5}}, warnings)

	_, err = weathercfg.Parse([]byte(src), weathercfg.Strict())
	require.ErrorIs(t, err, weathercfg.ErrUnexpectedLine)
}

func TestParseLegacyUnclosedBlocks(t *testing.T) {
	src := "A : struct.begin\n   SID = A\n   Clearly : struct.begin\n   struct.end\n   Rainy : struct.begin\n      BlendWeight = 1.f\n"

	var msgs []string
	cfg, err := weathercfg.Parse([]byte(src),
		weathercfg.LegacyUnclosedBlocks(),
		weathercfg.WarnFunc(func(_ string, _ int, msg string) { msgs = append(msgs, msg) }))
	require.NoError(t, err)
	require.Equal(t, []string{"Clearly"}, cfg.WeatherOrder)
	require.Len(t, msgs, 1)
	require.Contains(t, msgs[0], "Rainy")
}

func TestDecoder(t *testing.T) {
	cfg, err := weathercfg.NewDecoder(strings.NewReader(scenario), weathercfg.Filename("t.cfg")).Decode()
	require.NoError(t, err)
	require.Equal(t, "t.cfg", cfg.Filename)

	_, err = weathercfg.NewDecoder(nil).Decode()
	require.Error(t, err)

	_, err = weathercfg.NewDecoder(iotest.ErrReader(iotest.ErrTimeout)).Decode()
	require.ErrorIs(t, err, iotest.ErrTimeout)

	_, err = weathercfg.NewDecoder(bytes.NewReader(nil), weathercfg.FieldOrder()).Decode()
	require.Error(t, err)
}

func TestParseValue(t *testing.T) {
	require.Equal(t, ast.Float(80), weathercfg.ParseValue("80.f"))
	require.Equal(t, ast.Int(-1), weathercfg.ParseValue("-1"))
	require.Equal(t, ast.Bool(false), weathercfg.ParseValue("false"))
	require.Equal(t, ast.String("Clear_Sky"), weathercfg.ParseValue("Clear_Sky"))

	tok, err := weathercfg.FormatValue(ast.Float(80))
	require.NoError(t, err)
	require.Equal(t, "80.f", tok)
}
