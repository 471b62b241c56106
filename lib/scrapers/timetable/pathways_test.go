package timetable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractPathwaysDedupesPreservingOrder(t *testing.T) {
	page := `<td>AR01</td><td>G02</td><td>AR01</td>`
	require.Equal(t, []string{"AR01", "G02"}, ExtractPathways(page))
}

func TestExtractPathwayShapes(t *testing.T) {
	page := `AR03 G01A G7 ZZ99 G123 lowercase ar01`
	// G7 has no two-digit number, G123 has three, lowercase is ignored
	require.Equal(t, []string{"AR03", "G01A", "ZZ99"}, ExtractPathways(page))
}

func TestExtractPathwaysEmptyPage(t *testing.T) {
	require.Empty(t, ExtractPathways("<html><body>NO SECTIONS FOUND</body></html>"))
}
