package pipeline

import (
	"context"
	"math"

	"github.com/khaledhikmat/dfd-go/model"
)

// Class index convention is fixed: 0 = real, 1 = fake.
const (
	ClassReal = 0
	ClassFake = 1
)

// Classify runs the batch through the classifier and reduces its output
// to probabilities over the two classes. Inference is one deterministic
// forward pass; failures are reported, never retried.
func Classify(canxCtx context.Context, svcs ServicesFactory, batch model.Tensor) ([]float64, int, error) {
	out, err := svcs.InferenceSvc.Invoke(canxCtx, batch)
	if err != nil {
		return nil, 0, err
	}

	logits, _, err := ResolveOutput(out)
	if err != nil {
		return nil, 0, err
	}

	probs := softmax(logits.Data)
	prediction := ClassReal
	if probs[ClassFake] > probs[ClassReal] {
		prediction = ClassFake
	}

	return probs, prediction, nil
}

// ResolveOutput detects which of the three recognized forms the model
// returned and extracts the logits tensor:
//
//	(a) a labeled container exposing a "logits" output
//	(b) a (feature map, logits) pair
//	(c) a bare logits tensor
//
// Two interchangeable model exports are in circulation, so all three
// must be accepted. Anything else is a ShapeMismatchError.
func ResolveOutput(out model.Output) (model.Tensor, model.OutputForm, error) {
	if len(out.Names) == len(out.Values) {
		for i, name := range out.Names {
			if name == "logits" {
				return validated(out.Values[i], model.OutputLabeled)
			}
		}
	}

	switch len(out.Values) {
	case 2:
		return validated(out.Values[1], model.OutputPair)
	case 1:
		return validated(out.Values[0], model.OutputBare)
	}

	return model.Tensor{}, 0, model.ShapeMismatchError{Outputs: len(out.Values)}
}

func validated(logits model.Tensor, form model.OutputForm) (model.Tensor, model.OutputForm, error) {
	// Exactly 2 classes, with or without a leading batch dimension
	if len(logits.Data) != 2 || logits.Elements() != 2 {
		return model.Tensor{}, form, model.ShapeMismatchError{
			Outputs: 1,
			Shape:   logits.Shape,
		}
	}
	return logits, form, nil
}

func softmax(logits []float32) []float64 {
	maxLogit := float32(math.Inf(-1))
	for _, v := range logits {
		if v > maxLogit {
			maxLogit = v
		}
	}

	probs := make([]float64, len(logits))
	var sum float64
	for i, v := range logits {
		probs[i] = math.Exp(float64(v - maxLogit))
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}

	return probs
}
