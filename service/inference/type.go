package inference

import (
	"context"

	"github.com/khaledhikmat/dfd-go/model"
)

// IService is the classifier boundary: a black box that accepts one
// batch tensor and returns the model outputs in whatever form the
// loaded export produces. Initialization happens lazily on the first
// call and is shared process-wide.
type IService interface {
	Warmup(canxCtx context.Context) error
	Ready() bool
	Invoke(canxCtx context.Context, batch model.Tensor) (model.Output, error)
	Finalize()
}
