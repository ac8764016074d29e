package modelrepo

import "context"

type CacheInfo struct {
	Folder string  `json:"folder"`
	Exists bool    `json:"exists"`
	Files  int     `json:"files"`
	SizeMB float64 `json:"sizeMb"`
}

// IService fetches model artifacts from an external repository into a
// local cache. Downloads happen at most once; cached files are reused.
type IService interface {
	// Ensure downloads any missing artifacts and returns the local path
	// of the model file.
	Ensure(canxCtx context.Context) (string, error)
	CacheInfo() CacheInfo
}
