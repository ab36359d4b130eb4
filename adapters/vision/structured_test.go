package vision

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeStructuredPlainJSON(t *testing.T) {
	got, err := decodeStructured[extractionResult](`{"dimensions": [24, 12.5, 30]}`)
	require.NoError(t, err)
	require.Equal(t, []float64{24, 12.5, 30}, got.Dimensions)
}

func TestDecodeStructuredMarkdownFence(t *testing.T) {
	content := "```json\n{\"dimensions\": [18]}\n```"
	got, err := decodeStructured[extractionResult](content)
	require.NoError(t, err)
	require.Equal(t, []float64{18}, got.Dimensions)
}

func TestDecodeStructuredLeadingChatter(t *testing.T) {
	content := "Here are the dimensions I found:\n{\"dimensions\": [24, 30]}"
	got, err := decodeStructured[extractionResult](content)
	require.NoError(t, err)
	require.Equal(t, []float64{24, 30}, got.Dimensions)
}

func TestDecodeStructuredGarbage(t *testing.T) {
	_, err := decodeStructured[extractionResult]("not json at all")
	require.Error(t, err)
}
