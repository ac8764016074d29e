package inference

import (
	"context"

	"github.com/khaledhikmat/dfd-go/model"
)

type fakeService struct {
	out model.Output
	err error
}

// NewFake returns an inference service that always produces a bare
// real-leaning logits tensor.
func NewFake() IService {
	return &fakeService{
		out: model.Output{
			Names: []string{"output"},
			Values: []model.Tensor{
				{Data: []float32{2.0, -1.0}, Shape: []int64{1, 2}},
			},
		},
	}
}

// NewFakeWithOutput returns an inference service that always produces
// the given output.
func NewFakeWithOutput(out model.Output) IService {
	return &fakeService{out: out}
}

// NewFakeWithError returns an inference service whose calls all fail
// with the given error.
func NewFakeWithError(err error) IService {
	return &fakeService{err: err}
}

func (svc *fakeService) Warmup(_ context.Context) error {
	return svc.err
}

func (svc *fakeService) Ready() bool {
	return svc.err == nil
}

func (svc *fakeService) Invoke(_ context.Context, _ model.Tensor) (model.Output, error) {
	if svc.err != nil {
		return model.Output{}, svc.err
	}
	return svc.out, nil
}

func (svc *fakeService) Finalize() {
}
