package config

import (
	"os"
	"strconv"
	"strings"
)

type envVarsService struct {
}

func NewEnvVars() IService {
	return &envVarsService{}
}

func (svc *envVarsService) GetModeMaxShutdownTime() int {
	return getEnvInt("MODE_MAX_SHUTDOWN_TIME", 5)
}

func (svc *envVarsService) GetAPIPort() int {
	return getEnvInt("API_PORT", 5000)
}

func (svc *envVarsService) GetMetricsPort() int {
	return getEnvInt("METRICS_PORT", 9090)
}

func (svc *envVarsService) GetAllowedOrigins() []string {
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:3001")
	return strings.Split(origins, ",")
}

func (svc *envVarsService) GetMaxUploadSizeMB() int64 {
	return int64(getEnvInt("MAX_UPLOAD_SIZE_MB", 100))
}

func (svc *envVarsService) GetMaxFrames() int {
	return getEnvInt("MAX_FRAMES", 20)
}

func (svc *envVarsService) GetSequenceLength() int {
	// The pretrained classifier requires exactly 20 frames per inference
	return getEnvInt("SEQUENCE_LENGTH", 20)
}

func (svc *envVarsService) GetFrameSize() int {
	return getEnvInt("FRAME_SIZE", 112)
}

func (svc *envVarsService) GetModelName() string {
	return getEnv("MODEL_NAME", "Naman712/Deep-fake-detection")
}

func (svc *envVarsService) GetModelFileName() string {
	return getEnv("MODEL_FILE_NAME", "model_87_acc_20_frames_final_data.onnx")
}

func (svc *envVarsService) GetModelRepoBaseURL() string {
	return getEnv("MODEL_REPO_BASE_URL", "https://huggingface.co")
}

func (svc *envVarsService) GetModelRepoToken() string {
	return getEnv("HUGGINGFACE_TOKEN", "")
}

func (svc *envVarsService) GetModelCacheFolder() string {
	return getEnv("MODEL_CACHE_FOLDER", "./model_cache")
}

func (svc *envVarsService) GetOnnxLibraryPath() string {
	// Empty means probe the usual system locations
	return getEnv("ONNX_LIBRARY_PATH", "")
}

func (svc *envVarsService) GetUploadsFolder() string {
	return getEnv("UPLOADS_FOLDER", "./uploads")
}

func (svc *envVarsService) GetDataFolder() string {
	return getEnv("DATA_FOLDER", "./data")
}

func (svc *envVarsService) GetVerdictsLogFile() string {
	return getEnv("VERDICTS_LOG_FILE", "verdicts.log")
}

func (svc *envVarsService) GetWebhookURL() string {
	return getEnv("WEBHOOK_URL", "")
}

func (svc *envVarsService) GetStorageEndpoint() string {
	return getEnv("STORAGE_ENDPOINT", "")
}

func (svc *envVarsService) GetStorageAccessKey() string {
	return getEnv("STORAGE_ACCESS_KEY", "")
}

func (svc *envVarsService) GetStorageSecretKey() string {
	return getEnv("STORAGE_SECRET_KEY", "")
}

func (svc *envVarsService) GetStorageUseSSL() bool {
	return getEnv("STORAGE_USE_SSL", "false") == "true"
}

func (svc *envVarsService) GetStorageBucket() string {
	return getEnv("STORAGE_BUCKET", "analyses")
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
