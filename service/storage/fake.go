package storage

import (
	"context"

	"github.com/khaledhikmat/dfd-go/service/config"
)

type fakeService struct {
	CfgSvc config.IService
}

func NewFake(cfgsvc config.IService) IService {
	return &fakeService{
		CfgSvc: cfgsvc,
	}
}

func (svc *fakeService) StoreFile(_ context.Context, _ string, _ string) (string, error) {
	return "", nil
}
