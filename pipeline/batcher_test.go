package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testSeqLen = 20
	testSize   = 112
)

// makeFrame builds a normalized-frame-sized buffer whose every element
// carries the frame's ordinal, so subsampling and padding are traceable.
func makeFrame(ordinal int) []float32 {
	frame := make([]float32, 3*testSize*testSize)
	for i := range frame {
		frame[i] = float32(ordinal)
	}
	return frame
}

func frameAt(t *testing.T, batch []float32, pos int) []float32 {
	t.Helper()
	frameElems := 3 * testSize * testSize
	return batch[pos*frameElems : (pos+1)*frameElems]
}

func TestBatchShapeInvariant(t *testing.T) {
	for _, k := range []int{0, 1, 3, 19, 20, 21, 40, 100} {
		frames := make([][]float32, k)
		for i := range frames {
			frames[i] = makeFrame(i)
		}

		batch := BatchFrames(frames, testSeqLen, testSize)

		require.Equal(t, []int64{1, testSeqLen, 3, testSize, testSize}, batch.Shape, "k=%d", k)
		require.Len(t, batch.Data, testSeqLen*3*testSize*testSize, "k=%d", k)
	}
}

func TestBatchZeroFramesYieldsZeroSequence(t *testing.T) {
	batch := BatchFrames(nil, testSeqLen, testSize)

	for i, v := range batch.Data {
		require.Zero(t, v, "element %d", i)
	}
}

func TestBatchSingleFrameRepeats(t *testing.T) {
	batch := BatchFrames([][]float32{makeFrame(7)}, testSeqLen, testSize)

	for pos := 0; pos < testSeqLen; pos++ {
		require.Equal(t, float32(7), frameAt(t, batch.Data, pos)[0], "position %d", pos)
	}
}

func TestBatchExactLengthPreservesOrder(t *testing.T) {
	frames := make([][]float32, testSeqLen)
	for i := range frames {
		frames[i] = makeFrame(i)
	}

	batch := BatchFrames(frames, testSeqLen, testSize)

	for pos := 0; pos < testSeqLen; pos++ {
		require.Equal(t, float32(pos), frameAt(t, batch.Data, pos)[0], "position %d", pos)
	}
}

func TestBatchLongInputSubsamplesEvenly(t *testing.T) {
	frames := make([][]float32, 40)
	for i := range frames {
		frames[i] = makeFrame(i)
	}

	batch := BatchFrames(frames, testSeqLen, testSize)

	// First and last survive, order preserved
	require.Equal(t, float32(0), frameAt(t, batch.Data, 0)[0])
	require.Equal(t, float32(39), frameAt(t, batch.Data, testSeqLen-1)[0])

	prev := float32(-1)
	for pos := 0; pos < testSeqLen; pos++ {
		ordinal := frameAt(t, batch.Data, pos)[0]
		require.Greater(t, ordinal, prev, "position %d", pos)
		prev = ordinal
	}
}

func TestBatchShortInputPadsWithLastFrame(t *testing.T) {
	// A 5-frame video padded to the full sequence by repeating the last
	// frame
	frames := make([][]float32, 5)
	for i := range frames {
		frames[i] = makeFrame(i)
	}

	batch := BatchFrames(frames, testSeqLen, testSize)

	for pos := 0; pos < 5; pos++ {
		require.Equal(t, float32(pos), frameAt(t, batch.Data, pos)[0], "position %d", pos)
	}
	for pos := 5; pos < testSeqLen; pos++ {
		require.Equal(t, float32(4), frameAt(t, batch.Data, pos)[0], "position %d", pos)
	}
}

func TestBatchDeterministic(t *testing.T) {
	frames := make([][]float32, 33)
	for i := range frames {
		frames[i] = makeFrame(i)
	}

	first := BatchFrames(frames, testSeqLen, testSize)
	second := BatchFrames(frames, testSeqLen, testSize)

	require.Equal(t, first.Shape, second.Shape)
	require.Equal(t, first.Data, second.Data)
}
