package httpd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/khaledhikmat/dfd-go/pipeline"
	"github.com/khaledhikmat/dfd-go/service/lgr"
	"github.com/khaledhikmat/dfd-go/service/modelrepo"
)

const apiVersion = "1.0.0-onnx"

type apiService struct {
	Svcs    pipeline.ServicesFactory
	RepoSvc modelrepo.IService
}

func New(svcs pipeline.ServicesFactory, reposvc modelrepo.IService) *apiService {
	return &apiService{
		Svcs:    svcs,
		RepoSvc: reposvc,
	}
}

func (api *apiService) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(api.requestContext())
	r.Use(api.cors())

	r.MaxMultipartMemory = api.Svcs.CfgSvc.GetMaxUploadSizeMB() << 20

	r.GET("/", api.home)
	r.GET("/health", api.health)
	r.POST("/upload", api.upload)
	r.POST("/analyze", api.analyze)

	return r
}

// Run serves the API until the context is cancelled, then shuts down
// gracefully within the configured mode shutdown time.
func (api *apiService) Run(canxCtx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", api.Svcs.CfgSvc.GetAPIPort()),
		Handler: api.Router(),
	}

	errStream := make(chan error, 1)
	go func() {
		lgr.Logger.Info(
			"api server starting",
			slog.Int("port", api.Svcs.CfgSvc.GetAPIPort()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errStream <- err
		}
	}()

	select {
	case <-canxCtx.Done():
		lgr.Logger.Info(
			"api server context cancelled",
		)
	case err := <-errStream:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(api.Svcs.CfgSvc.GetModeMaxShutdownTime())*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// requestContext assigns every request an id and logs its duration on
// the way out.
func (api *apiService) requestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("requestID", requestID)

		start := time.Now()
		c.Next()

		lgr.Logger.Info(
			"request completed",
			slog.String("requestID", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	}
}

func (api *apiService) cors() gin.HandlerFunc {
	allowed := map[string]bool{}
	for _, origin := range api.Svcs.CfgSvc.GetAllowedOrigins() {
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Origin, Cache-Control, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
