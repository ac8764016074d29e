package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/natefinch/lumberjack"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/khaledhikmat/dfd-go/metrics"
	"github.com/khaledhikmat/dfd-go/model"
	"github.com/khaledhikmat/dfd-go/service/config"
	"github.com/khaledhikmat/dfd-go/service/lgr"
)

// Rolling log of every verdict produced by this process
var (
	verdictLogger   *lumberjack.Logger
	verdictLoggerOnce sync.Once
)

func verdictLog(cfgsvc config.IService) *lumberjack.Logger {
	verdictLoggerOnce.Do(func() {
		verdictLogger = &lumberjack.Logger{
			Filename:   cfgsvc.GetVerdictsLogFile(),
			MaxSize:    10, // MB
			MaxBackups: 5,
			MaxAge:     7,    // days
			Compress:   true, // compress old logs
		}
	})
	return verdictLogger
}

// Analyze runs one full synchronous pass over the saved video:
// sample -> normalize -> batch -> classify -> format. Frame-level
// failures degrade to padding; structural failures (empty video,
// unavailable model, unrecognized output) surface as errors.
func Analyze(canxCtx context.Context, svcs ServicesFactory, analysisID string, videoPath string, maxFrames int) (model.Verdict, error) {
	tracer := otel.Tracer("pipeline")
	canxCtx, span := tracer.Start(canxCtx, "pipeline.Analyze",
		trace.WithAttributes(
			attribute.String("analysis.id", analysisID),
			attribute.Int("analysis.max_frames", maxFrames),
		))
	defer span.End()

	size := svcs.CfgSvc.GetFrameSize()
	seqLen := svcs.CfgSvc.GetSequenceLength()
	totalTimer := time.Now()

	sampleTimer := time.Now()
	mats, info, err := SampleFrames(videoPath, maxFrames)
	if err != nil {
		return model.Verdict{}, err
	}
	sampleTime := time.Since(sampleTimer)

	metrics.FramesSampledTotal.Add(float64(info.Sampled))
	metrics.FramesSkippedTotal.Add(float64(info.SkippedFrames))
	lgr.Logger.Info(
		"frames sampled",
		slog.String("analysisID", analysisID),
		slog.Int("totalFrames", info.TotalFrames),
		slog.Int("sampled", info.Sampled),
		slog.Int("skipped", info.SkippedFrames),
	)

	batchTimer := time.Now()
	normalized := make([][]float32, 0, len(mats))
	for _, mat := range mats {
		frame, normErr := NormalizeFrame(mat, size)
		mat.Close()
		if normErr != nil {
			// A single bad frame degrades to padding downstream
			lgr.Logger.Warn(
				"skipping frame that failed to normalize",
				slog.Any("error", normErr),
			)
			continue
		}
		normalized = append(normalized, frame)
	}

	batch := BatchFrames(normalized, seqLen, size)
	batchTime := time.Since(batchTimer)

	inferTimer := time.Now()
	probs, prediction, err := Classify(canxCtx, svcs, batch)
	if err != nil {
		return model.Verdict{}, err
	}
	inferTime := time.Since(inferTimer)

	verdict := FormatVerdict(probs, prediction, len(normalized))
	totalTime := time.Since(totalTimer)

	metrics.AnalysesTotal.WithLabelValues(strings.ToLower(verdict.Label())).Inc()
	metrics.AnalysisDuration.WithLabelValues("sample").Observe(sampleTime.Seconds())
	metrics.AnalysisDuration.WithLabelValues("batch").Observe(batchTime.Seconds())
	metrics.AnalysisDuration.WithLabelValues("infer").Observe(inferTime.Seconds())
	metrics.AnalysisDuration.WithLabelValues("total").Observe(totalTime.Seconds())

	// Best-effort persistence; the verdict is already in hand
	if err := svcs.DataSvc.NewSamplerStats(model.SamplerStats{
		AnalysisID:    analysisID,
		TotalFrames:   info.TotalFrames,
		Sampled:       info.Sampled,
		SkippedFrames: info.SkippedFrames,
	}); err != nil {
		lgr.Logger.Error(
			"failed to store sampler stats",
			slog.Any("error", err),
		)
	}

	if err := svcs.DataSvc.NewPipelineStats(model.PipelineStats{
		AnalysisID: analysisID,
		SampleTime: sampleTime.Seconds(),
		BatchTime:  batchTime.Seconds(),
		InferTime:  inferTime.Seconds(),
		TotalTime:  totalTime.Seconds(),
		FramesUsed: verdict.FramesUsed,
		Prediction: verdict.Label(),
		Confidence: verdict.Confidence,
	}); err != nil {
		lgr.Logger.Error(
			"failed to store pipeline stats",
			slog.Any("error", err),
		)
	}

	logVerdict(svcs.CfgSvc, analysisID, verdict)

	lgr.Logger.Info(
		"analysis complete",
		slog.String("analysisID", analysisID),
		slog.String("prediction", verdict.Label()),
		slog.Float64("confidence", verdict.Confidence),
		slog.Int("framesUsed", verdict.FramesUsed),
		slog.Duration("duration", totalTime),
	)

	return verdict, nil
}

func logVerdict(cfgsvc config.IService, analysisID string, verdict model.Verdict) {
	entry := map[string]interface{}{
		"time":       time.Now().Format(time.RFC3339),
		"analysisId": analysisID,
		"verdict":    verdict,
	}

	jsonData, err := json.MarshalIndent(entry, "", "  ") // pretty-print
	if err != nil {
		fmt.Println("Error marshaling verdict:", err)
		return
	}

	if _, err := verdictLog(cfgsvc).Write(append(jsonData, '\n')); err != nil {
		fmt.Println("Error writing to verdict log file:", err)
	}
}
