package pipeline

import (
	"log/slog"
	"math"

	"gocv.io/x/gocv"

	"github.com/khaledhikmat/dfd-go/model"
	"github.com/khaledhikmat/dfd-go/service/lgr"
)

// SampleFrames decodes up to maxFrames frames evenly distributed across
// the video's full duration, in chronological order. Frames are seeked
// lazily; a single decode failure skips that frame rather than aborting
// the extraction, so the result may be shorter than requested.
//
// Returned Mats are RGB and owned by the caller.
func SampleFrames(videoPath string, maxFrames int) ([]gocv.Mat, SampleInfo, error) {
	info := SampleInfo{}

	capture, err := gocv.OpenVideoCapture(videoPath)
	if err != nil {
		// A file no decoder accepts is indistinguishable from a frameless
		// video as far as the caller is concerned
		lgr.Logger.Warn(
			"video open failed",
			slog.String("path", videoPath),
			slog.Any("error", err),
		)
		return nil, info, model.EmptyVideoError{Path: videoPath}
	}
	defer capture.Close()

	info.TotalFrames = int(capture.Get(gocv.VideoCaptureFrameCount))
	if info.TotalFrames <= 0 {
		// An empty sample set must never be silently misread as a short
		// video downstream
		return nil, info, model.EmptyVideoError{Path: videoPath}
	}

	frames := []gocv.Mat{}
	img := gocv.NewMat()
	defer img.Close()

	for _, idx := range evenIndices(info.TotalFrames, maxFrames) {
		capture.Set(gocv.VideoCapturePosFrames, float64(idx))
		if ok := capture.Read(&img); !ok || img.Empty() {
			info.SkippedFrames++
			continue
		}

		rgb := gocv.NewMat()
		gocv.CvtColor(img, &rgb, gocv.ColorBGRToRGB)
		frames = append(frames, rgb)
	}

	info.Sampled = len(frames)
	return frames, info, nil
}

// evenIndices returns min(count, total) indices evenly spaced across
// [0, total-1] inclusive, by linear interpolation rounded to nearest.
// Covering first and last index avoids biasing toward any contiguous
// clip of a long video.
func evenIndices(total, count int) []int {
	if total <= 0 || count <= 0 {
		return nil
	}
	if count > total {
		count = total
	}
	if count == 1 {
		return []int{0}
	}

	step := float64(total-1) / float64(count-1)
	indices := make([]int, count)
	for i := range indices {
		indices[i] = int(math.Round(float64(i) * step))
	}
	return indices
}
