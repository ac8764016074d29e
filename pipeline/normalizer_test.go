package pipeline

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeRGBShape(t *testing.T) {
	data := make([]byte, 112*112*3)
	out := normalizeRGB(data, 112, 112)
	require.Len(t, out, 3*112*112)
}

func TestNormalizeRGBKnownValues(t *testing.T) {
	// One white pixel: (1 - mean) / std per channel
	data := []byte{255, 255, 255}
	out := normalizeRGB(data, 1, 1)

	require.InDelta(t, (1.0-0.485)/0.229, out[0], 1e-5)
	require.InDelta(t, (1.0-0.456)/0.224, out[1], 1e-5)
	require.InDelta(t, (1.0-0.406)/0.225, out[2], 1e-5)

	// One black pixel: (0 - mean) / std per channel
	data = []byte{0, 0, 0}
	out = normalizeRGB(data, 1, 1)

	require.InDelta(t, -0.485/0.229, out[0], 1e-5)
	require.InDelta(t, -0.456/0.224, out[1], 1e-5)
	require.InDelta(t, -0.406/0.225, out[2], 1e-5)
}

func TestNormalizeRGBChannelFirstOrdering(t *testing.T) {
	// 2x1 image: first pixel pure red, second pure green
	data := []byte{255, 0, 0, 0, 255, 0}
	out := normalizeRGB(data, 1, 2)

	require.Len(t, out, 6)

	// R plane: [red.r, green.r]
	require.InDelta(t, (1.0-0.485)/0.229, out[0], 1e-5)
	require.InDelta(t, -0.485/0.229, out[1], 1e-5)
	// G plane: [red.g, green.g]
	require.InDelta(t, -0.456/0.224, out[2], 1e-5)
	require.InDelta(t, (1.0-0.456)/0.224, out[3], 1e-5)
	// B plane: both zero pixels
	require.InDelta(t, -0.406/0.225, out[4], 1e-5)
	require.InDelta(t, -0.406/0.225, out[5], 1e-5)
}

func TestNormalizeRGBBoundedRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	data := make([]byte, 112*112*3)
	rng.Read(data)

	out := normalizeRGB(data, 112, 112)

	// Standardized ImageNet values stay within roughly [-2.5, 2.7]
	for i, v := range out {
		require.GreaterOrEqual(t, v, float32(-2.5), "element %d", i)
		require.LessOrEqual(t, v, float32(2.7), "element %d", i)
	}
}

func TestNormalizeRGBDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	data := make([]byte, 112*112*3)
	rng.Read(data)

	first := normalizeRGB(data, 112, 112)
	second := normalizeRGB(data, 112, 112)
	require.Equal(t, first, second)
}
