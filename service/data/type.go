package data

import "github.com/khaledhikmat/dfd-go/model"

type IService interface {
	RetrieveAnalyses() ([]model.AnalysisRecord, error)
	RetrieveAnalysisByID(id string) (model.AnalysisRecord, error)
	NewAnalysis(record model.AnalysisRecord) error

	NewError(err interface{}) error
	NewSamplerStats(stats model.SamplerStats) error
	NewPipelineStats(stats model.PipelineStats) error
}
