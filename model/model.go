package model

import (
	"fmt"
	"runtime/debug"
)

type CustomError struct {
	Processor  string                 `json:"processor"`
	Inner      error                  `json:"innerError"`
	Message    string                 `json:"message"`
	StackTrace string                 `json:"stackTrace"`
	Misc       map[string]interface{} `json:"misc"`
}

func (e CustomError) Error() string {
	return e.Message
}

func GenError(proc string, err error, misc map[string]interface{}, messagef string, args ...interface{}) CustomError {
	return CustomError{
		Processor:  proc,
		Inner:      err,
		Message:    fmt.Sprintf(messagef, args...),
		StackTrace: string(debug.Stack()),
		Misc:       misc,
	}
}

// Tensor is a dense float32 tensor in row-major order.
type Tensor struct {
	Data  []float32 `json:"-"`
	Shape []int64   `json:"shape"`
}

func (t Tensor) Elements() int {
	n := 1
	for _, d := range t.Shape {
		n *= int(d)
	}
	return n
}

// OutputForm identifies which of the recognized forms the classifier
// returned its result in. Two interchangeable model exports are in
// circulation, so the adapter has to accept all three.
type OutputForm int

const (
	// OutputLabeled is a labeled container exposing a logits output.
	OutputLabeled OutputForm = iota
	// OutputPair is a (feature map, logits) pair.
	OutputPair
	// OutputBare is a bare logits tensor.
	OutputBare
)

func (f OutputForm) String() string {
	switch f {
	case OutputLabeled:
		return "labeled"
	case OutputPair:
		return "pair"
	case OutputBare:
		return "bare"
	}
	return "unknown"
}

// Output is the raw classifier result: the named output tensors exactly as
// the model returned them. The adapter resolves it into logits once, at
// the pipeline boundary.
type Output struct {
	Names  []string
	Values []Tensor
}

// Verdict is the final real/fake decision for one analyzed video.
type Verdict struct {
	IsFake     bool    `json:"isFake"`
	Confidence float64 `json:"confidence"`
	RealScore  float64 `json:"realScore"`
	FakeScore  float64 `json:"fakeScore"`
	FramesUsed int     `json:"framesUsed"`
}

func (v Verdict) Label() string {
	if v.IsFake {
		return "FAKE"
	}
	return "REAL"
}

// AnalysisRecord is the persisted form of one completed analysis.
type AnalysisRecord struct {
	ID         string  `json:"id"`
	FileName   string  `json:"fileName"`
	FileSize   int64   `json:"fileSize"`
	Verdict    Verdict `json:"verdict"`
	ModelName  string  `json:"modelName"`
	DurationMs int64   `json:"durationMs"`
	Timestamp  int64   `json:"timestamp"`
}

type SamplerStats struct {
	AnalysisID    string `json:"analysisId"`
	TotalFrames   int    `json:"totalFrames"`
	Sampled       int    `json:"sampled"`
	SkippedFrames int    `json:"skippedFrames"`
	Timestamp     int64  `json:"timestamp"`
}

type PipelineStats struct {
	AnalysisID string  `json:"analysisId"`
	SampleTime float64 `json:"sampleTime"`
	BatchTime  float64 `json:"batchTime"`
	InferTime  float64 `json:"inferTime"`
	TotalTime  float64 `json:"totalTime"`
	FramesUsed int     `json:"framesUsed"`
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
	Timestamp  int64   `json:"timestamp"`
}
