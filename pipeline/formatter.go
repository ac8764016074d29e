package pipeline

import (
	"github.com/khaledhikmat/dfd-go/model"
)

// FormatVerdict is a pure mapping from class probabilities and frame
// counts to the verdict structure. Malformed numeric input (NaN) passes
// through unchanged.
//
// framesUsed reflects the frames actually extracted from the video, not
// the padded sequence length.
func FormatVerdict(probs []float64, prediction int, framesUsed int) model.Verdict {
	return model.Verdict{
		IsFake:     prediction == ClassFake,
		Confidence: probs[prediction],
		RealScore:  probs[ClassReal],
		FakeScore:  probs[ClassFake],
		FramesUsed: framesUsed,
	}
}
