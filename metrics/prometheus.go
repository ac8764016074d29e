package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dfd_analyses_total",
		Help: "Total number of completed analyses, by verdict",
	}, []string{"verdict"})

	AnalysisFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dfd_analysis_failures_total",
		Help: "Total number of failed analyses, by reason",
	}, []string{"reason"})

	AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dfd_analysis_duration_seconds",
		Help:    "Duration of the analysis pipeline, by stage",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"stage"})

	FramesSampledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dfd_frames_sampled_total",
		Help: "Total number of frames sampled across all analyses",
	})

	FramesSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dfd_frames_skipped_total",
		Help: "Total number of frames skipped due to decode failures",
	})

	UploadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dfd_uploads_total",
		Help: "Total number of uploaded videos",
	})
)
