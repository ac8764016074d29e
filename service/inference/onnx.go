package inference

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"

	onnxrt "github.com/yalue/onnxruntime_go"

	"github.com/khaledhikmat/dfd-go/model"
	"github.com/khaledhikmat/dfd-go/service/config"
	"github.com/khaledhikmat/dfd-go/service/lgr"
	"github.com/khaledhikmat/dfd-go/service/modelrepo"
)

type onnxService struct {
	CfgSvc  config.IService
	RepoSvc modelrepo.IService

	loadOnce sync.Once
	loadErr  error

	session     *onnxrt.DynamicAdvancedSession
	inputName   string
	outputNames []string
}

// NewOnnx returns an inference service backed by an ONNX runtime
// session. The session is created on the first Warmup or Invoke and is
// read-only for the remainder of the process lifetime.
func NewOnnx(cfgsvc config.IService, reposvc modelrepo.IService) IService {
	return &onnxService{
		CfgSvc:  cfgsvc,
		RepoSvc: reposvc,
	}
}

func (svc *onnxService) Warmup(canxCtx context.Context) error {
	svc.loadOnce.Do(func() {
		svc.loadErr = svc.load(canxCtx)
	})

	if svc.loadErr != nil {
		return model.ModelUnavailableError{Inner: svc.loadErr}
	}
	return nil
}

func (svc *onnxService) Ready() bool {
	return svc.session != nil
}

func (svc *onnxService) load(canxCtx context.Context) error {
	modelPath, err := svc.RepoSvc.Ensure(canxCtx)
	if err != nil {
		return err
	}

	if err := svc.setLibraryPath(); err != nil {
		return err
	}

	if !onnxrt.IsInitialized() {
		if err := onnxrt.InitializeEnvironment(); err != nil {
			return fmt.Errorf("error initializing onnx runtime: %w", err)
		}
	}

	inputs, outputs, err := onnxrt.GetInputOutputInfo(modelPath)
	if err != nil {
		return fmt.Errorf("error reading model io info: %w", err)
	}
	if len(inputs) != 1 || len(outputs) == 0 {
		return fmt.Errorf("unexpected model io (in:%d out:%d)", len(inputs), len(outputs))
	}

	svc.inputName = inputs[0].Name
	svc.outputNames = make([]string, 0, len(outputs))
	for _, out := range outputs {
		svc.outputNames = append(svc.outputNames, out.Name)
	}

	session, err := onnxrt.NewDynamicAdvancedSession(modelPath,
		[]string{svc.inputName}, svc.outputNames, nil)
	if err != nil {
		return fmt.Errorf("error creating onnx session: %w", err)
	}
	svc.session = session

	lgr.Logger.Info(
		"onnx model loaded",
		slog.String("model", modelPath),
		slog.String("input", svc.inputName),
		slog.Any("outputs", svc.outputNames),
	)

	return nil
}

func (svc *onnxService) Invoke(canxCtx context.Context, batch model.Tensor) (model.Output, error) {
	if err := svc.Warmup(canxCtx); err != nil {
		return model.Output{}, err
	}

	input, err := onnxrt.NewTensor(onnxrt.NewShape(batch.Shape...), batch.Data)
	if err != nil {
		return model.Output{}, fmt.Errorf("error creating input tensor: %w", err)
	}
	defer input.Destroy()

	outputs := make([]onnxrt.Value, len(svc.outputNames))
	if err := svc.session.Run([]onnxrt.Value{input}, outputs); err != nil {
		return model.Output{}, fmt.Errorf("error running inference: %w", err)
	}
	defer func() {
		for _, out := range outputs {
			if out != nil {
				out.Destroy()
			}
		}
	}()

	result := model.Output{
		Names:  svc.outputNames,
		Values: make([]model.Tensor, 0, len(outputs)),
	}
	for _, out := range outputs {
		tensor, ok := out.(*onnxrt.Tensor[float32])
		if !ok {
			return model.Output{}, fmt.Errorf("unexpected output tensor type %T", out)
		}

		// Copy out: the onnx buffers are destroyed when this call returns
		data := make([]float32, len(tensor.GetData()))
		copy(data, tensor.GetData())
		result.Values = append(result.Values, model.Tensor{
			Data:  data,
			Shape: tensor.GetShape(),
		})
	}

	return result, nil
}

func (svc *onnxService) Finalize() {
	if svc.session != nil {
		svc.session.Destroy()
		svc.session = nil
	}
}

func (svc *onnxService) setLibraryPath() error {
	if configured := svc.CfgSvc.GetOnnxLibraryPath(); configured != "" {
		onnxrt.SetSharedLibraryPath(configured)
		return nil
	}

	candidates := []string{
		"/usr/local/lib/libonnxruntime.so",
		"/usr/lib/libonnxruntime.so",
		"/opt/onnxruntime/cpu/lib/libonnxruntime.so",
	}
	if runtime.GOOS == "darwin" {
		candidates = []string{
			"/usr/local/lib/libonnxruntime.dylib",
			"/opt/homebrew/lib/libonnxruntime.dylib",
		}
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			onnxrt.SetSharedLibraryPath(candidate)
			return nil
		}
	}

	return fmt.Errorf("onnx runtime library not found, set ONNX_LIBRARY_PATH")
}
