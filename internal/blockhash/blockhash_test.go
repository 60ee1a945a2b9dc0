package blockhash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOfIsDeterministic(t *testing.T) {
	require.Equal(t, Of("pix", "metadata"), Of("pix", "metadata"))
}

func TestOfDistinguishesLevels(t *testing.T) {
	require.NotEqual(t, Of("", "main_header"), Of("pix", "metadata"))
}

func TestOfDistinguishesConcatenationBoundary(t *testing.T) {
	require.NotEqual(t, Of("ab", "c"), Of("a", "bc"))
}
