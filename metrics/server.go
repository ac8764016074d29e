package metrics

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/khaledhikmat/dfd-go/service/lgr"
)

// StartServer exposes /metrics on its own port so the scrape surface
// stays off the public API.
func StartServer(port int) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		lgr.Logger.Info(
			"metrics server starting",
			slog.Int("port", port),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lgr.Logger.Error(
				"metrics server error",
				slog.Any("error", err),
			)
		}
	}()

	return srv
}
