package data

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/khaledhikmat/dfd-go/model"
	"github.com/khaledhikmat/dfd-go/service/config"
)

type filesDBService struct {
	CfgSvc config.IService
}

func NewFilesDB(cfgsvc config.IService) IService {
	return &filesDBService{
		CfgSvc: cfgsvc,
	}
}

func (svc *filesDBService) RetrieveAnalyses() ([]model.AnalysisRecord, error) {
	return retrieveEntities[model.AnalysisRecord]("analyses", svc.CfgSvc)
}

func (svc *filesDBService) RetrieveAnalysisByID(id string) (model.AnalysisRecord, error) {
	records, err := svc.RetrieveAnalyses()
	if err != nil {
		return model.AnalysisRecord{}, err
	}

	for _, record := range records {
		if record.ID == id {
			return record, nil
		}
	}

	return model.AnalysisRecord{}, fmt.Errorf("analysis %s not found", id)
}

func (svc *filesDBService) NewAnalysis(record model.AnalysisRecord) error {
	record.Timestamp = time.Now().Unix()
	return newEntity(record, "analyses", svc.CfgSvc)
}

func (svc *filesDBService) NewError(err interface{}) error {
	// Determine if the error is custom
	var customErr model.CustomError
	if custom, ok := err.(model.CustomError); ok {
		customErr = custom
	} else {
		customErr.Processor = "N/A"
		customErr.Inner = err.(error)
		customErr.Message = err.(error).Error()
		customErr.StackTrace = "N/A"
		customErr.Misc = nil
	}

	errorData := struct {
		Timestamp  int64                  `json:"timestamp"`
		Processor  string                 `json:"processor"`
		Inner      string                 `json:"innerError"`
		Message    string                 `json:"message"`
		StackTrace string                 `json:"stackTrace"`
		Misc       map[string]interface{} `json:"misc"`
	}{
		Timestamp:  time.Now().Unix(),
		Processor:  customErr.Processor,
		Inner:      customErr.Inner.Error(),
		Message:    customErr.Message,
		StackTrace: customErr.StackTrace,
		Misc:       customErr.Misc,
	}
	return newEntity(errorData, "errors", svc.CfgSvc)
}

func (svc *filesDBService) NewSamplerStats(stats model.SamplerStats) error {
	stats.Timestamp = time.Now().Unix()
	return newEntity(stats, "sampler-stats", svc.CfgSvc)
}

func (svc *filesDBService) NewPipelineStats(stats model.PipelineStats) error {
	stats.Timestamp = time.Now().Unix()
	return newEntity(stats, "pipeline-stats", svc.CfgSvc)
}

func newEntity[T any](entity T, filename string, cfgsvc config.IService) error {
	entities, err := retrieveEntities[T](filename, cfgsvc)
	if err != nil {
		return err
	}

	entities = append(entities, entity)

	data, err := json.MarshalIndent(entities, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfgsvc.GetDataFolder(), 0755); err != nil {
		return err
	}

	output := fmt.Sprintf("%s/%s.json", cfgsvc.GetDataFolder(), filename)
	return os.WriteFile(output, data, 0644)
}

func retrieveEntities[T any](filename string, cfgsvc config.IService) ([]T, error) {
	var entities []T

	data, err := os.ReadFile(fmt.Sprintf("%s/%s.json", cfgsvc.GetDataFolder(), filename))
	if err != nil {
		// File not found, return empty slice
		return entities, nil
	}

	err = json.Unmarshal(data, &entities)
	if err != nil {
		return nil, err
	}

	return entities, nil
}
