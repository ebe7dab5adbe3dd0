package diff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeIdentical(t *testing.T) {
	r := Compute("a\nb\nc", "a\nb\nc\n")
	require.False(t, r.Changed())
	require.Len(t, r.Lines, 3)
	require.Empty(t, r.Format("x.cfg"))
}

func TestComputeReplacedLine(t *testing.T) {
	before := "Clearly : struct.begin\n      BlendWeight = 50.f\n   struct.end"
	after := "Clearly : struct.begin\n      BlendWeight = 80.f\n   struct.end"

	r := Compute(before, after)
	require.True(t, r.Changed())
	require.Equal(t, 1, r.Added)
	require.Equal(t, 1, r.Removed)

	require.Equal(t, []Line{
		{Op: Equal, Text: "Clearly : struct.begin", Old: 1, New: 1},
		{Op: Delete, Text: "      BlendWeight = 50.f", Old: 2},
		{Op: Insert, Text: "      BlendWeight = 80.f", New: 2},
		{Op: Equal, Text: "   struct.end", Old: 3, New: 3},
	}, r.Lines)

	require.Equal(t, "--- combined.cfg\n+++ combined.cfg\n"+
		"@@ -2 +2 @@\n"+
		"-      BlendWeight = 50.f\n"+
		"+      BlendWeight = 80.f\n", r.Format("combined.cfg"))
}

func TestComputeAppendedLine(t *testing.T) {
	r := Compute("a\nb", "a\nb\nc")
	require.Equal(t, 1, r.Added)
	require.Equal(t, 0, r.Removed)
	require.Equal(t, "@@ -3 +3 @@\n+c\n", r.Format(""))
}

func TestComputeEmpty(t *testing.T) {
	r := Compute("", "")
	require.False(t, r.Changed())
	require.Empty(t, r.Lines)
}
