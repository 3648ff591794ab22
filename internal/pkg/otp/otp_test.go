package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_LengthAndDigits(t *testing.T) {
	code, err := Generate(6)
	require.NoError(t, err)
	require.Len(t, code, 6)
	for _, c := range code {
		assert.GreaterOrEqual(t, c, '0')
		assert.LessOrEqual(t, c, '9')
	}
}

func TestGenerate_OutOfRangeLength_FallsBackToSix(t *testing.T) {
	for _, n := range []int{0, 3, 11, -1} {
		code, err := Generate(n)
		require.NoError(t, err)
		assert.Len(t, code, 6)
	}
}

func TestGenerate_SupportedLengths(t *testing.T) {
	for _, n := range []int{4, 8, 10} {
		code, err := Generate(n)
		require.NoError(t, err)
		assert.Len(t, code, n)
	}
}
