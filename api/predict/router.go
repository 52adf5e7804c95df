package predict

import (
	"net/http"

	"github.com/kilianp07/smartbin/core/logger"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	Logger logger.Logger
	// Metrics is mounted on /metrics when non-nil.
	Metrics http.Handler
}

// NewRouter wires every endpoint of the service.
func NewRouter(svc Service, opts RouterOptions) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/", NewHomeHandler())
	mux.Handle("/health", NewHealthHandler())
	mux.Handle("/predict", NewPredictHandler(svc, opts.Logger))
	if opts.Metrics != nil {
		mux.Handle("/metrics", opts.Metrics)
	}
	return mux
}
