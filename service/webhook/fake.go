package webhook

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

func (svc *fakeService) Post(_ context.Context, _ map[string]interface{}) error {
	return nil
}
