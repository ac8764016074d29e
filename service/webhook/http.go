package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/khaledhikmat/dfd-go/service/config"
)

type httpService struct {
	CfgSvc config.IService
	Client *http.Client
}

func NewHTTP(cfgsvc config.IService) IService {
	return &httpService{
		CfgSvc: cfgsvc,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (svc *httpService) Post(canxCtx context.Context, payload map[string]interface{}) error {
	url := svc.CfgSvc.GetWebhookURL()
	if url == "" {
		// No webhook configured
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshalling webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(canxCtx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("error creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := svc.Client.Do(req)
	if err != nil {
		return fmt.Errorf("error posting webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
