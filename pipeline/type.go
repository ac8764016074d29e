package pipeline

import (
	"github.com/khaledhikmat/dfd-go/service/config"
	"github.com/khaledhikmat/dfd-go/service/data"
	"github.com/khaledhikmat/dfd-go/service/inference"
	"github.com/khaledhikmat/dfd-go/service/storage"
	"github.com/khaledhikmat/dfd-go/service/webhook"
)

// ServicesFactory carries the services the pipeline and its callers
// depend on. Implementations can be swapped without touching the
// pipeline itself.
type ServicesFactory struct {
	CfgSvc       config.IService
	DataSvc      data.IService
	InferenceSvc inference.IService
	StorageSvc   storage.IService
	WebhookSvc   webhook.IService
}

// SampleInfo reports what the sampler actually did with a video.
type SampleInfo struct {
	TotalFrames   int
	Sampled       int
	SkippedFrames int
}
