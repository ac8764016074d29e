package storage

import (
	"context"
	"fmt"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/khaledhikmat/dfd-go/service/config"
)

type minioService struct {
	CfgSvc config.IService
	Client *miniogo.Client
}

func NewMinio(cfgsvc config.IService) (IService, error) {
	client, err := miniogo.New(cfgsvc.GetStorageEndpoint(), &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfgsvc.GetStorageAccessKey(), cfgsvc.GetStorageSecretKey(), ""),
		Secure: cfgsvc.GetStorageUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("error creating minio client: %w", err)
	}

	return &minioService{
		CfgSvc: cfgsvc,
		Client: client,
	}, nil
}

func (svc *minioService) StoreFile(canxCtx context.Context, localPath string, objectName string) (string, error) {
	bucket := svc.CfgSvc.GetStorageBucket()

	exists, err := svc.Client.BucketExists(canxCtx, bucket)
	if err != nil {
		return "", fmt.Errorf("error checking bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := svc.Client.MakeBucket(canxCtx, bucket, miniogo.MakeBucketOptions{}); err != nil {
			return "", fmt.Errorf("error creating bucket %s: %w", bucket, err)
		}
	}

	if _, err := svc.Client.FPutObject(canxCtx, bucket, objectName, localPath, miniogo.PutObjectOptions{}); err != nil {
		return "", fmt.Errorf("error uploading %s: %w", objectName, err)
	}

	return fmt.Sprintf("%s/%s/%s", svc.CfgSvc.GetStorageEndpoint(), bucket, objectName), nil
}
