package htmlutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripTags(t *testing.T) {
	require.Equal(t, "CS 2114 and MATH 2534",
		StripTags(`CS 2114 <span>and</span> <b>MATH 2534</b>`))
	require.Equal(t, "ab", StripTags("a<br\n/>b"))
}

func TestCollapseWhitespace(t *testing.T) {
	require.Equal(t, "a b c", CollapseWhitespace("  a\n\tb   c "))
	require.Equal(t, "", CollapseWhitespace(" \n "))
}

func TestCleanCell(t *testing.T) {
	require.Equal(t, "9:05AM", CleanCell(" 9:05AM "))
	require.Equal(t, "MCB 101", CleanCell("MCB 101"))
}
