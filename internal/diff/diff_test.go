package diff

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func TestCompareIdenticalTexts(t *testing.T) {
	text := "{\n  \"a\": 1\n}\n"
	r := Compare(text, text)
	require.True(t, r.Empty())
}

func TestCompareSingleLineDifference(t *testing.T) {
	expected := "{\n  \"price\": 100,\n  \"sku\": \"A-1\"\n}\n"
	actual := "{\n  \"price\": 101,\n  \"sku\": \"A-1\"\n}\n"

	r := Compare(expected, actual)
	require.Len(t, r.Lines, 1)

	line := r.Lines[0]
	require.Equal(t, 1, line.Index)
	require.Equal(t, `  "price": 100,`, line.Expected)
	require.Equal(t, `  "price": 101,`, line.Actual)
	require.True(t, line.InExpected)
	require.True(t, line.InActual)
}

func TestCompareTwoLineDifference(t *testing.T) {
	expected := "a\nb\nc\nd\n"
	actual := "a\nB\nc\nD\n"

	r := Compare(expected, actual)
	require.Len(t, r.Lines, 2)
	require.Equal(t, 1, r.Lines[0].Index)
	require.Equal(t, 3, r.Lines[1].Index)
}

func TestCompareIgnoresSurroundingWhitespace(t *testing.T) {
	r := Compare("  \"a\": 1\n", "\"a\": 1  \n")
	require.True(t, r.Empty())
}

func TestCompareActualLonger(t *testing.T) {
	r := Compare("a\n", "a\nb\n")
	require.Len(t, r.Lines, 1)

	line := r.Lines[0]
	require.Equal(t, 1, line.Index)
	require.False(t, line.InExpected)
	require.True(t, line.InActual)
	require.Equal(t, "b", line.Actual)
}

func TestCompareExpectedLonger(t *testing.T) {
	r := Compare("a\nb\n", "a\n")
	require.Len(t, r.Lines, 1)
	require.True(t, r.Lines[0].InExpected)
	require.False(t, r.Lines[0].InActual)
}

func TestRenderPlain(t *testing.T) {
	expected := "{\n  \"price\": 100,\n  \"sku\": \"A-1\"\n}\n"
	actual := "{\n  \"price\": 101,\n  \"sku\": \"A-1\"\n}\n"

	out := Compare(expected, actual).Render(false)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "render_plain", []byte(out))
}

func TestRenderColorMarkers(t *testing.T) {
	out := Compare("old\n", "new\n").Render(true)

	require.Contains(t, out, ansiRed+"- old"+ansiReset)
	require.Contains(t, out, ansiGreen+"+ new"+ansiReset)
	require.True(t, strings.HasSuffix(out, "\n"))
}

func TestRenderEmptyReport(t *testing.T) {
	require.Equal(t, "", Compare("same\n", "same\n").Render(true))
}
