package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"marketlens/internal/gateway/handler"
	"marketlens/internal/gateway/middleware"
)

func NewMux(h *handler.Handler, corsOrigins []string) http.Handler {
	mux := http.NewServeMux()

	// RPC handlers and the bulk websocket
	h.Register(mux)

	// Operational endpoints
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	return middleware.CORS(corsOrigins)(mux)
}
