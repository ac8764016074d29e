package modelrepo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/mdobak/go-xerrors"

	"github.com/khaledhikmat/dfd-go/service/config"
	"github.com/khaledhikmat/dfd-go/service/lgr"
)

const tokenPlaceholder = "your_token_here_replace_this"

type huggingFaceService struct {
	CfgSvc config.IService
	Client *retryablehttp.Client
}

func NewHuggingFace(cfgsvc config.IService) IService {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = nil

	return &huggingFaceService{
		CfgSvc: cfgsvc,
		Client: client,
	}
}

func (svc *huggingFaceService) Ensure(canxCtx context.Context) (string, error) {
	token := svc.CfgSvc.GetModelRepoToken()
	if token == "" || token == tokenPlaceholder {
		return "", xerrors.New("no model repository token provided, set HUGGINGFACE_TOKEN")
	}

	cacheFolder := svc.CfgSvc.GetModelCacheFolder()
	if err := os.MkdirAll(cacheFolder, 0755); err != nil {
		return "", fmt.Errorf("error creating model cache folder: %w", err)
	}

	artifacts := []string{
		svc.CfgSvc.GetModelFileName(),
		"config.json",
	}

	modelPath := ""
	for _, name := range artifacts {
		localPath := filepath.Join(cacheFolder, name)

		if _, err := os.Stat(localPath); err == nil {
			lgr.Logger.Info(
				"using cached model artifact",
				slog.String("artifact", name),
			)
		} else {
			lgr.Logger.Info(
				"downloading model artifact",
				slog.String("artifact", name),
				slog.String("repo", svc.CfgSvc.GetModelName()),
			)
			if err := svc.download(canxCtx, name, localPath, token); err != nil {
				return "", err
			}
		}

		if name == svc.CfgSvc.GetModelFileName() {
			modelPath = localPath
		}
	}

	return modelPath, nil
}

func (svc *huggingFaceService) download(canxCtx context.Context, artifact, localPath, token string) error {
	url := fmt.Sprintf("%s/%s/resolve/main/%s",
		svc.CfgSvc.GetModelRepoBaseURL(),
		svc.CfgSvc.GetModelName(),
		artifact)

	req, err := retryablehttp.NewRequestWithContext(canxCtx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error creating model download request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := svc.Client.Do(req)
	if err != nil {
		return fmt.Errorf("error downloading %s: %w", artifact, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return xerrors.New(fmt.Sprintf("error downloading %s: status %d", artifact, resp.StatusCode))
	}

	// Download to a temp file first so a partial download never gets
	// mistaken for a cached artifact
	tmp, err := os.CreateTemp(filepath.Dir(localPath), artifact+".*.partial")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("error writing %s: %w", artifact, err)
	}
	tmp.Close()

	if err := os.Rename(tmp.Name(), localPath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error caching %s: %w", artifact, err)
	}

	return nil
}

func (svc *huggingFaceService) CacheInfo() CacheInfo {
	info := CacheInfo{
		Folder: svc.CfgSvc.GetModelCacheFolder(),
	}

	entries, err := os.ReadDir(info.Folder)
	if err != nil {
		return info
	}

	info.Exists = true
	var size int64
	for _, entry := range entries {
		fi, err := entry.Info()
		if err != nil || fi.IsDir() {
			continue
		}
		info.Files++
		size += fi.Size()
	}
	info.SizeMB = float64(size) / (1024 * 1024)

	return info
}
