package storage

import "context"

type IService interface {
	// StoreFile uploads a local file under the given object name and
	// returns its storage URL.
	StoreFile(canxCtx context.Context, localPath string, objectName string) (string, error)
}
