package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Preprocessor Tracking:
// - TrackPreprocessor() registers every #define with the macro name position
// - TrackPreprocessor() collects quoted #include targets but not system includes
// - #ifdef <guard> ... #endif opens an excluded span covering the directive lines
// - #ifdef of other names, #ifndef, and #if never exclude
// - Nested conditionals pair with the right #endif
// - A guard left open at end of file closes on the last line
// - ExcludedLine() answers per-line membership

func mustScan(t *testing.T, src string) *File {
	t.Helper()
	f, err := Scan(src)
	require.NoError(t, err)
	return f
}

func TestTrackPreprocessor_Defines(t *testing.T) {
	// Test: macro names and positions are captured
	src := "#define pi 3.14\n#  define MAX_LEN 128\n"
	pp := TrackPreprocessor(mustScan(t, src), "DEBUG")

	require.Len(t, pp.Macros, 2)
	assert.Equal(t, "pi", pp.Macros[0].Name)
	assert.Equal(t, 1, pp.Macros[0].Pos.Line)
	assert.Equal(t, 9, pp.Macros[0].Pos.Col)

	assert.Equal(t, "MAX_LEN", pp.Macros[1].Name)
	assert.Equal(t, 2, pp.Macros[1].Pos.Line)
}

func TestTrackPreprocessor_Includes(t *testing.T) {
	// Test: quoted includes only; system headers are never followed
	src := "#include <stdio.h>\n#include \"util.h\"\n#include \"sub/more.h\"\n"
	pp := TrackPreprocessor(mustScan(t, src), "DEBUG")

	require.Len(t, pp.Includes, 2)
	assert.Equal(t, "util.h", pp.Includes[0].Path)
	assert.Equal(t, 2, pp.Includes[0].Pos.Line)
	assert.Equal(t, "sub/more.h", pp.Includes[1].Path)
}

func TestTrackPreprocessor_DebugGuardExcluded(t *testing.T) {
	// Test: #ifdef DEBUG spans are excluded, directives included
	src := "int a;\n#ifdef DEBUG\nint b;\n#endif\nint c;\n"
	pp := TrackPreprocessor(mustScan(t, src), "DEBUG")

	require.Len(t, pp.Excluded, 1)
	assert.Equal(t, Span{StartLine: 2, EndLine: 4}, pp.Excluded[0])

	assert.False(t, pp.ExcludedLine(1))
	assert.True(t, pp.ExcludedLine(2))
	assert.True(t, pp.ExcludedLine(3))
	assert.True(t, pp.ExcludedLine(4))
	assert.False(t, pp.ExcludedLine(5))
}

func TestTrackPreprocessor_OtherConditionalsNotExcluded(t *testing.T) {
	// Test: only an exact #ifdef of the guard name excludes
	src := "#ifdef TRACE\nint a;\n#endif\n#ifndef DEBUG\nint b;\n#endif\n#if DEBUG\nint c;\n#endif\n"
	pp := TrackPreprocessor(mustScan(t, src), "DEBUG")

	assert.Empty(t, pp.Excluded)
}

func TestTrackPreprocessor_NestedConditionals(t *testing.T) {
	// Test: inner #endif closes the inner frame, not the guard
	src := "#ifdef DEBUG\n#ifdef TRACE\nint a;\n#endif\nint b;\n#endif\nint c;\n"
	pp := TrackPreprocessor(mustScan(t, src), "DEBUG")

	require.Len(t, pp.Excluded, 1)
	assert.Equal(t, Span{StartLine: 1, EndLine: 6}, pp.Excluded[0])
	assert.False(t, pp.ExcludedLine(7))
}

func TestTrackPreprocessor_DanglingGuardClosesAtEOF(t *testing.T) {
	// Test: a guard without #endif excludes through the last line
	src := "int a;\n#ifdef DEBUG\nint b;\nint c;\n"
	pp := TrackPreprocessor(mustScan(t, src), "DEBUG")

	require.Len(t, pp.Excluded, 1)
	assert.Equal(t, 2, pp.Excluded[0].StartLine)
	assert.True(t, pp.ExcludedLine(4))
	assert.False(t, pp.ExcludedLine(1))
}

func TestTrackPreprocessor_CustomGuard(t *testing.T) {
	// Test: the guard name is configurable
	src := "#ifdef VERBOSE\nint a;\n#endif\n#ifdef DEBUG\nint b;\n#endif\n"
	pp := TrackPreprocessor(mustScan(t, src), "VERBOSE")

	require.Len(t, pp.Excluded, 1)
	assert.Equal(t, Span{StartLine: 1, EndLine: 3}, pp.Excluded[0])
}
