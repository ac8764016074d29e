package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/xerrors"

	"github.com/khaledhikmat/dfd-go/httpd"
	"github.com/khaledhikmat/dfd-go/metrics"
	"github.com/khaledhikmat/dfd-go/pipeline"
	"github.com/khaledhikmat/dfd-go/service/config"
	"github.com/khaledhikmat/dfd-go/service/data"
	"github.com/khaledhikmat/dfd-go/service/inference"
	"github.com/khaledhikmat/dfd-go/service/lgr"
	"github.com/khaledhikmat/dfd-go/service/modelrepo"
	"github.com/khaledhikmat/dfd-go/service/storage"
	"github.com/khaledhikmat/dfd-go/service/webhook"
)

const (
	// WARNING: this has to be bigger than the api server shutdown time
	waitOnShutdown = 8 * time.Second
)

func main() {
	rootCtx := context.Background()
	canxCtx, canxFn := context.WithCancel(rootCtx)

	// Hook up a signal handler to cancel the context
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		lgr.Logger.Info(
			"received kill signal",
			slog.Any("signal", sig),
		)
		canxFn()
	}()

	// Load env vars if we are in DEV mode
	if os.Getenv("RUN_TIME_ENV") == "dev" || os.Getenv("RUN_TIME_ENV") == "" {
		lgr.Logger.Info("loading env vars from .env file")
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			lgr.Logger.Error("error loading .env file", slog.Any("error", xerrors.New(err.Error())))
			panic("error loading .env file")
		}
	}

	// Create the services needed by the pipeline and the api layer
	// Config service
	cfgSvc := config.NewEnvVars()
	// Data service
	dataSvc := data.NewFilesDB(cfgSvc)
	// Model repository service
	repoSvc := modelrepo.NewHuggingFace(cfgSvc)
	// Inference service
	inferenceSvc := inference.NewOnnx(cfgSvc, repoSvc)
	defer inferenceSvc.Finalize()
	// Storage service
	storageSvc := newStorage(cfgSvc)
	// Webhook service
	webhookSvc := webhook.NewHTTP(cfgSvc)

	svcs := pipeline.ServicesFactory{
		CfgSvc:       cfgSvc,
		DataSvc:      dataSvc,
		InferenceSvc: inferenceSvc,
		StorageSvc:   storageSvc,
		WebhookSvc:   webhookSvc,
	}

	banner(cfgSvc)

	// Expose prometheus metrics on a separate port
	metrics.StartServer(cfgSvc.GetMetricsPort())

	// Start the api server
	apiResult := make(chan error)
	defer close(apiResult)

	go func() {
		apiResult <- httpd.New(svcs, repoSvc).Run(canxCtx)
	}()

	// Wait for cancellation or api server error
	for {
		select {
		case <-canxCtx.Done():
			lgr.Logger.Info(
				"api pod context cancelled",
			)
			goto resume

		case err := <-apiResult:
			if err != nil {
				lgr.Logger.Info(
					"api server exited",
					slog.Any("error", xerrors.New(err.Error())),
				)
			}
			goto resume
		}
	}

	// Wait in a non-blocking way for `waitOnShutdown` for all the go routines to exit
	// This is needed because the go routines may need to report errors as they are exiting
resume:
	// Cancel the context if not already cancelled
	if canxCtx.Err() == nil {
		canxFn()
	}

	lgr.Logger.Info(
		"api pod is waiting for all go routines to exit",
	)

	timer := time.NewTimer(waitOnShutdown)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			lgr.Logger.Info(
				"api pod shutdown waiting period expired. Exiting now",
				slog.Duration("period", waitOnShutdown),
			)

			return

		case err := <-apiResult:
			if err != nil {
				lgr.Logger.Info(
					"api server exited",
					slog.Any("error", xerrors.New(err.Error())),
				)
			}
		}
	}
}

// newStorage picks the minio-backed storage when an endpoint is
// configured, otherwise a no-op fake so archival silently disables
func newStorage(cfgSvc config.IService) storage.IService {
	if cfgSvc.GetStorageEndpoint() == "" {
		return storage.NewFake(cfgSvc)
	}

	storageSvc, err := storage.NewMinio(cfgSvc)
	if err != nil {
		lgr.Logger.Error(
			"error creating minio storage service. Falling back to fake",
			slog.Any("error", xerrors.New(err.Error())),
		)
		return storage.NewFake(cfgSvc)
	}
	return storageSvc
}

func banner(cfgSvc config.IService) {
	color.Cyan("Deepfake Detection Backend (ONNX)")
	color.White("Model: %s", cfgSvc.GetModelName())
	color.White("Server: http://localhost:%d", cfgSvc.GetAPIPort())
	color.White("Metrics: http://localhost:%d/metrics", cfgSvc.GetMetricsPort())
}
