package model

import (
	"errors"
	"fmt"
)

// EmptyVideoError means the container reported zero decodable frames.
// Fatal to the request; an empty sample set must never be silently
// misread downstream as a short video.
type EmptyVideoError struct {
	Path string
}

func (e EmptyVideoError) Error() string {
	return fmt.Sprintf("no frames found in video %s", e.Path)
}

// ShapeMismatchError means the classifier output matched none of the
// recognized forms.
type ShapeMismatchError struct {
	Outputs int
	Shape   []int64
}

func (e ShapeMismatchError) Error() string {
	return fmt.Sprintf("unrecognized classifier output: %d outputs, shape %v", e.Outputs, e.Shape)
}

// ModelUnavailableError means the classifier failed to initialize. It is
// fatal to all requests until resolved; there is no per-request recovery.
type ModelUnavailableError struct {
	Inner error
}

func (e ModelUnavailableError) Error() string {
	return fmt.Sprintf("ML model not available: %v", e.Inner)
}

func (e ModelUnavailableError) Unwrap() error {
	return e.Inner
}

func IsEmptyVideo(err error) bool {
	var e EmptyVideoError
	return errors.As(err, &e)
}

func IsModelUnavailable(err error) bool {
	var e ModelUnavailableError
	return errors.As(err, &e)
}
