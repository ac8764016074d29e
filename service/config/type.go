package config

type IService interface {
	GetModeMaxShutdownTime() int
	GetAPIPort() int
	GetMetricsPort() int
	GetAllowedOrigins() []string
	GetMaxUploadSizeMB() int64

	GetMaxFrames() int
	GetSequenceLength() int
	GetFrameSize() int

	GetModelName() string
	GetModelFileName() string
	GetModelRepoBaseURL() string
	GetModelRepoToken() string
	GetModelCacheFolder() string
	GetOnnxLibraryPath() string

	GetUploadsFolder() string
	GetDataFolder() string
	GetVerdictsLogFile() string

	GetWebhookURL() string

	GetStorageEndpoint() string
	GetStorageAccessKey() string
	GetStorageSecretKey() string
	GetStorageUseSSL() bool
	GetStorageBucket() string
}
