package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmptyVideoError(t *testing.T) {
	err := EmptyVideoError{Path: "clip.mp4"}
	require.Contains(t, err.Error(), "no frames found")

	wrapped := fmt.Errorf("sampling: %w", err)
	require.True(t, IsEmptyVideo(wrapped))
	require.False(t, IsModelUnavailable(wrapped))
}

func TestModelUnavailableError(t *testing.T) {
	inner := errors.New("no token")
	err := ModelUnavailableError{Inner: inner}

	require.Contains(t, err.Error(), "not available")
	require.ErrorIs(t, err, inner)
	require.True(t, IsModelUnavailable(err))
	require.False(t, IsEmptyVideo(err))
}

func TestShapeMismatchError(t *testing.T) {
	err := ShapeMismatchError{Outputs: 1, Shape: []int64{1, 4}}
	require.Contains(t, err.Error(), "[1 4]")
}

func TestOutputFormString(t *testing.T) {
	require.Equal(t, "labeled", OutputLabeled.String())
	require.Equal(t, "pair", OutputPair.String())
	require.Equal(t, "bare", OutputBare.String())
}

func TestTensorElements(t *testing.T) {
	tensor := Tensor{Shape: []int64{1, 20, 3, 112, 112}}
	require.Equal(t, 1*20*3*112*112, tensor.Elements())
}
