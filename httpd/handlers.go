package httpd

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khaledhikmat/dfd-go/metrics"
	"github.com/khaledhikmat/dfd-go/model"
	"github.com/khaledhikmat/dfd-go/pipeline"
	"github.com/khaledhikmat/dfd-go/service/lgr"
)

func (api *apiService) home(c *gin.Context) {
	cache := api.RepoSvc.CacheInfo()

	c.JSON(http.StatusOK, gin.H{
		"message": "Deepfake Detection API",
		"version": apiVersion,
		"status":  "running",
		"model_info": gin.H{
			"name":           api.Svcs.CfgSvc.GetModelName(),
			"type":           "onnx",
			"loaded":         api.Svcs.InferenceSvc.Ready(),
			"cache_location": cache.Folder,
			"cache_exists":   cache.Exists,
			"cache_size_mb":  fmt.Sprintf("%.2f", cache.SizeMB),
		},
		"endpoints": gin.H{
			"health":  "/health",
			"upload":  "/upload (POST)",
			"analyze": "/analyze (POST)",
		},
	})
}

func (api *apiService) health(c *gin.Context) {
	// Health triggers the lazy model load so a cold process reports an
	// honest detector status
	modelErr := api.Svcs.InferenceSvc.Warmup(c.Request.Context())
	if modelErr != nil {
		lgr.Logger.Error(
			"health check model load failed",
			slog.Any("error", modelErr),
		)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   apiVersion,
			"services": gin.H{
				"api":               true,
				"cors":              true,
				"file_handler":      true,
				"video_processor":   true,
				"deepfake_detector": modelErr == nil,
				"model_loaded":      api.Svcs.InferenceSvc.Ready(),
				"model_type":        "onnx",
				"model_name":        api.Svcs.CfgSvc.GetModelName(),
			},
			"endpoints": []string{"/health", "/upload", "/analyze"},
		},
	})
}

func (api *apiService) upload(c *gin.Context) {
	file, err := c.FormFile("video")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "No video file provided",
		})
		return
	}

	if file.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "No video file selected",
		})
		return
	}

	if tooLarge(c, file.Size, api.Svcs.CfgSvc.GetMaxUploadSizeMB()) {
		return
	}

	metrics.UploadsTotal.Inc()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message":   "Video uploaded successfully",
			"filename":  file.Filename,
			"size":      file.Size,
			"upload_id": c.GetString("requestID"),
			"status":    "uploaded",
		},
	})
}

func (api *apiService) analyze(c *gin.Context) {
	analysisID := c.GetString("requestID")

	// The model is fatal to all requests until resolved; bail before
	// touching the upload
	if err := api.Svcs.InferenceSvc.Warmup(c.Request.Context()); err != nil {
		metrics.AnalysisFailuresTotal.WithLabelValues("model_unavailable").Inc()
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "ML model not available",
			"details": err.Error(),
		})
		return
	}

	file, err := c.FormFile("video")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "No video file provided for analysis",
		})
		return
	}

	if tooLarge(c, file.Size, api.Svcs.CfgSvc.GetMaxUploadSizeMB()) {
		return
	}

	if err := os.MkdirAll(api.Svcs.CfgSvc.GetUploadsFolder(), 0755); err != nil {
		api.internalError(c, analysisID, err, "error creating uploads folder")
		return
	}

	// The upload lives only as long as this request
	videoPath := filepath.Join(api.Svcs.CfgSvc.GetUploadsFolder(),
		fmt.Sprintf("%s_%s", analysisID, filepath.Base(file.Filename)))
	if err := c.SaveUploadedFile(file, videoPath); err != nil {
		api.internalError(c, analysisID, err, "error saving uploaded video")
		return
	}
	defer os.Remove(videoPath)

	start := time.Now()
	verdict, err := pipeline.Analyze(c.Request.Context(), api.Svcs, analysisID,
		videoPath, api.Svcs.CfgSvc.GetMaxFrames())
	if err != nil {
		api.analysisError(c, analysisID, err)
		return
	}

	api.recordAnalysis(c, analysisID, file.Filename, file.Size, videoPath, verdict, time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"analysis_id": analysisID,
			"status":      "completed",
			"result": gin.H{
				"is_deepfake": verdict.IsFake,
				"confidence":  verdict.Confidence,
				"prediction_summary": gin.H{
					"frames_used": verdict.FramesUsed,
					"prediction":  verdict.Label(),
				},
				"detailed_scores": gin.H{
					"real_score": verdict.RealScore,
					"fake_score": verdict.FakeScore,
					"confidence": verdict.Confidence,
				},
			},
			"frames_analyzed": verdict.FramesUsed,
			"model_info": gin.H{
				"name": api.Svcs.CfgSvc.GetModelName(),
				"type": "onnx",
			},
			"timestamp": time.Now().Unix(),
		},
	})
}

// recordAnalysis handles the best-effort side effects of a completed
// analysis: persistence, archival and webhook notification.
func (api *apiService) recordAnalysis(c *gin.Context, analysisID, fileName string, fileSize int64, videoPath string, verdict model.Verdict, duration time.Duration) {
	if err := api.Svcs.DataSvc.NewAnalysis(model.AnalysisRecord{
		ID:         analysisID,
		FileName:   fileName,
		FileSize:   fileSize,
		Verdict:    verdict,
		ModelName:  api.Svcs.CfgSvc.GetModelName(),
		DurationMs: duration.Milliseconds(),
	}); err != nil {
		lgr.Logger.Error(
			"failed to store analysis record",
			slog.Any("error", err),
		)
	}

	if api.Svcs.CfgSvc.GetStorageEndpoint() != "" {
		objectName := fmt.Sprintf("%s/%s", analysisID, filepath.Base(fileName))
		if _, err := api.Svcs.StorageSvc.StoreFile(c.Request.Context(), videoPath, objectName); err != nil {
			lgr.Logger.Error(
				"failed to archive analyzed video",
				slog.Any("error", err),
			)
		}
	}

	if err := api.Svcs.WebhookSvc.Post(c.Request.Context(), map[string]interface{}{
		"analysisId": analysisID,
		"prediction": verdict.Label(),
		"confidence": verdict.Confidence,
		"framesUsed": verdict.FramesUsed,
		"timestamp":  time.Now().Format(time.RFC3339),
	}); err != nil {
		lgr.Logger.Error(
			"failed to post analysis webhook",
			slog.Any("error", err),
		)
	}
}

func (api *apiService) analysisError(c *gin.Context, analysisID string, err error) {
	api.newError(analysisID, err)

	switch {
	case model.IsEmptyVideo(err):
		metrics.AnalysisFailuresTotal.WithLabelValues("empty_video").Inc()
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Could not extract frames from video",
			"details": err.Error(),
		})
	case model.IsModelUnavailable(err):
		metrics.AnalysisFailuresTotal.WithLabelValues("model_unavailable").Inc()
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "ML model not available",
			"details": err.Error(),
		})
	default:
		metrics.AnalysisFailuresTotal.WithLabelValues("analysis").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Analysis failed",
			"details": err.Error(),
		})
	}
}

func (api *apiService) internalError(c *gin.Context, analysisID string, err error, message string) {
	api.newError(analysisID, err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   message,
	})
}

func (api *apiService) newError(analysisID string, err error) {
	storeErr := api.Svcs.DataSvc.NewError(model.GenError("httpd_analyze",
		err,
		map[string]interface{}{"analysisId": analysisID},
		"%s", err.Error()))
	if storeErr != nil {
		lgr.Logger.Error(
			"failed to store error",
			slog.Any("error", storeErr),
		)
	}
}

func tooLarge(c *gin.Context, size int64, maxMB int64) bool {
	if size <= maxMB<<20 {
		return false
	}
	c.JSON(http.StatusRequestEntityTooLarge, gin.H{
		"success": false,
		"error":   "File too large",
		"message": fmt.Sprintf("Maximum file size is %dMB", maxMB),
	})
	return true
}
