package pipeline

import (
	"github.com/khaledhikmat/dfd-go/model"
)

// BatchFrames assembles an ordered list of normalized frames into one
// tensor of shape (1, seqLen, 3, size, size), regardless of how many
// frames came in:
//
//   - more than seqLen: subsample seqLen evenly spaced frames, order
//     preserved, so no segment of a long video dominates
//   - fewer: repeat the last available frame up to seqLen
//   - none at all: a zero-valued sequence, keeping the output contract
//     so the caller gets a low-confidence verdict instead of a hard
//     abort
func BatchFrames(frames [][]float32, seqLen, size int) model.Tensor {
	frameElems := 3 * size * size
	out := make([]float32, seqLen*frameElems)

	switch k := len(frames); {
	case k >= seqLen:
		for i, idx := range evenIndices(k, seqLen) {
			copy(out[i*frameElems:(i+1)*frameElems], frames[idx])
		}
	case k > 0:
		for i := 0; i < seqLen; i++ {
			idx := i
			if idx >= k {
				idx = k - 1
			}
			copy(out[i*frameElems:(i+1)*frameElems], frames[idx])
		}
	}

	return model.Tensor{
		Data:  out,
		Shape: []int64{1, int64(seqLen), 3, int64(size), int64(size)},
	}
}
