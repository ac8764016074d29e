package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvenIndicesCountAndRange(t *testing.T) {
	for _, total := range []int{1, 2, 5, 19, 20, 21, 100, 1000} {
		for _, count := range []int{1, 2, 5, 20, 40} {
			indices := evenIndices(total, count)

			expected := count
			if total < count {
				expected = total
			}
			require.Len(t, indices, expected, "total=%d count=%d", total, count)

			for i, idx := range indices {
				require.GreaterOrEqual(t, idx, 0)
				require.Less(t, idx, total)
				if i > 0 {
					require.Greater(t, idx, indices[i-1], "indices must be strictly ascending")
				}
			}

			if expected >= 2 {
				require.Equal(t, 0, indices[0], "first index must cover the video start")
				require.Equal(t, total-1, indices[len(indices)-1], "last index must cover the video end")
			}
		}
	}
}

func TestEvenIndicesExact(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		count    int
		expected []int
	}{
		{"single frame", 1, 20, []int{0}},
		{"request one", 100, 1, []int{0}},
		{"full coverage", 5, 5, []int{0, 1, 2, 3, 4}},
		{"short video", 5, 20, []int{0, 1, 2, 3, 4}},
		{"even spread", 10, 4, []int{0, 3, 6, 9}},
		{"double", 40, 20, []int{0, 2, 4, 6, 8, 10, 12, 14, 16, 18, 21, 23, 25, 27, 29, 31, 33, 35, 37, 39}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, evenIndices(tc.total, tc.count))
		})
	}
}

func TestEvenIndicesDegenerate(t *testing.T) {
	require.Nil(t, evenIndices(0, 20))
	require.Nil(t, evenIndices(10, 0))
	require.Nil(t, evenIndices(-1, 20))
}

func TestEvenIndicesDeterministic(t *testing.T) {
	first := evenIndices(997, 20)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, evenIndices(997, 20))
	}
}
