package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVectorLiteral(t *testing.T) {
	lit := VectorLiteral([]float32{0.5, -1, 0})
	require.Equal(t, "[0.500000,-1.000000,0.000000]", lit)
}

func TestVectorLiteralEmpty(t *testing.T) {
	require.Equal(t, "[]", VectorLiteral(nil))
}
