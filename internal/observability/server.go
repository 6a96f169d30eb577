package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jinterlante1206/research-assistant/pkg/logging"
)

// Serve starts a loopback-only /metrics HTTP listener on addr. It returns
// immediately; the listener runs until ctx is canceled. Intended to bind
// to 127.0.0.1 addresses only — this server has no other HTTP surface.
func Serve(ctx context.Context, addr string, log *logging.Logger) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn("metrics server stopped", "error", err)
		}
	}()
}
