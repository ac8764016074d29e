package pipeline

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// ImageNet channel statistics, matching what the classifier was trained
// with.
var (
	chanMean = [3]float32{0.485, 0.456, 0.406}
	chanStd  = [3]float32{0.229, 0.224, 0.225}
)

// NormalizeFrame maps one RGB frame of arbitrary resolution to a
// standardized channel-first tensor of shape (3, size, size). The whole
// frame is used as input; there is no face cropping in this variant.
func NormalizeFrame(frame gocv.Mat, size int) ([]float32, error) {
	resized := gocv.NewMat()
	defer resized.Close()

	// Square resize, no aspect-ratio preservation
	gocv.Resize(frame, &resized, image.Pt(size, size), 0, 0, gocv.InterpolationLinear)

	data, err := resized.DataPtrUint8()
	if err != nil {
		return nil, fmt.Errorf("error reading frame data: %w", err)
	}
	if len(data) != size*size*3 {
		return nil, fmt.Errorf("unexpected frame buffer length %d", len(data))
	}

	return normalizeRGB(data, size, size), nil
}

// normalizeRGB rescales interleaved HWC uint8 pixels to [0,1], applies
// per-channel standardization and reorders to CHW.
func normalizeRGB(data []byte, height, width int) []float32 {
	plane := height * width
	out := make([]float32, 3*plane)

	for i := 0; i < plane; i++ {
		for c := 0; c < 3; c++ {
			v := float32(data[i*3+c]) / 255.0
			out[c*plane+i] = (v - chanMean[c]) / chanStd[c]
		}
	}

	return out
}
