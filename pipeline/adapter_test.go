package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/khaledhikmat/dfd-go/model"
	"github.com/khaledhikmat/dfd-go/service/inference"
)

func logitsTensor(values ...float32) model.Tensor {
	return model.Tensor{Data: values, Shape: []int64{1, int64(len(values))}}
}

func TestResolveOutputLabeled(t *testing.T) {
	out := model.Output{
		Names:  []string{"fmap", "logits"},
		Values: []model.Tensor{{Data: make([]float32, 64), Shape: []int64{1, 64}}, logitsTensor(0.1, 5.0)},
	}

	logits, form, err := ResolveOutput(out)
	require.NoError(t, err)
	require.Equal(t, model.OutputLabeled, form)
	require.Equal(t, []float32{0.1, 5.0}, logits.Data)
}

func TestResolveOutputPair(t *testing.T) {
	out := model.Output{
		Names:  []string{"output_0", "output_1"},
		Values: []model.Tensor{{Data: make([]float32, 64), Shape: []int64{1, 64}}, logitsTensor(0.1, 5.0)},
	}

	logits, form, err := ResolveOutput(out)
	require.NoError(t, err)
	require.Equal(t, model.OutputPair, form)
	require.Equal(t, []float32{0.1, 5.0}, logits.Data)
}

func TestResolveOutputBare(t *testing.T) {
	out := model.Output{
		Names:  []string{"output"},
		Values: []model.Tensor{logitsTensor(0.1, 5.0)},
	}

	logits, form, err := ResolveOutput(out)
	require.NoError(t, err)
	require.Equal(t, model.OutputBare, form)
	require.Equal(t, []float32{0.1, 5.0}, logits.Data)
}

func TestResolveOutputMismatch(t *testing.T) {
	// No outputs at all
	_, _, err := ResolveOutput(model.Output{})
	require.Error(t, err)
	var mismatch model.ShapeMismatchError
	require.ErrorAs(t, err, &mismatch)

	// Three anonymous outputs match none of the recognized forms
	_, _, err = ResolveOutput(model.Output{
		Names:  []string{"a", "b", "c"},
		Values: []model.Tensor{logitsTensor(1), logitsTensor(2), logitsTensor(3)},
	})
	require.ErrorAs(t, err, &mismatch)

	// A bare output with the wrong class count
	_, _, err = ResolveOutput(model.Output{
		Names:  []string{"output"},
		Values: []model.Tensor{{Data: make([]float32, 4), Shape: []int64{1, 4}}},
	})
	require.ErrorAs(t, err, &mismatch)
}

func TestSoftmax(t *testing.T) {
	probs := softmax([]float32{0.1, 5.0})

	require.InDelta(t, 1.0, probs[0]+probs[1], 1e-9)
	require.InDelta(t, 0.99261, probs[1], 1e-4)
}

func TestClassifyFakeLogits(t *testing.T) {
	svcs := ServicesFactory{
		InferenceSvc: inference.NewFakeWithOutput(model.Output{
			Names:  []string{"output"},
			Values: []model.Tensor{logitsTensor(0.1, 5.0)},
		}),
	}

	probs, prediction, err := Classify(context.Background(), svcs, model.Tensor{})
	require.NoError(t, err)
	require.Equal(t, ClassFake, prediction)
	require.InDelta(t, 0.99261, probs[prediction], 1e-4)
}

func TestClassifyRealLogits(t *testing.T) {
	svcs := ServicesFactory{
		InferenceSvc: inference.NewFake(),
	}

	probs, prediction, err := Classify(context.Background(), svcs, model.Tensor{})
	require.NoError(t, err)
	require.Equal(t, ClassReal, prediction)
	require.Greater(t, probs[ClassReal], probs[ClassFake])
}

func TestClassifyPropagatesInferenceError(t *testing.T) {
	wantErr := model.ModelUnavailableError{Inner: context.DeadlineExceeded}
	svcs := ServicesFactory{
		InferenceSvc: inference.NewFakeWithError(wantErr),
	}

	_, _, err := Classify(context.Background(), svcs, model.Tensor{})
	require.Error(t, err)
	require.True(t, model.IsModelUnavailable(err))
}
