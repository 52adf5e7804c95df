// Package predict exposes the pickup predictor over HTTP.
package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/kilianp07/smartbin/core/logger"
	"github.com/kilianp07/smartbin/core/model"
	"github.com/kilianp07/smartbin/core/pickup"
)

// HomeMessage is the liveness banner served on GET /.
const HomeMessage = "Smart Dustbin ML Backend Running"

// Service is the prediction backend used by the handler.
type Service interface {
	Predict(ctx context.Context, req model.PredictionRequest) (model.PredictionResult, error)
	RecordFailure(code pickup.Code)
}

// NewHomeHandler serves the plain-text banner.
func NewHomeHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = fmt.Fprint(w, HomeMessage)
	})
}

// NewHealthHandler reports {"status":"healthy"} unconditionally.
func NewHealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
}

// NewPredictHandler serves POST /predict.
func NewPredictHandler(svc Service, log logger.Logger) http.Handler {
	if log == nil {
		log = logger.NopLogger{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		defer func() {
			if rec := recover(); rec != nil {
				log.Errorf("predict panic: %v", rec)
				svc.RecordFailure(pickup.CodeInternal)
				writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: fmt.Sprint(rec)})
			}
		}()

		req, err := DecodeRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			svc.RecordFailure(pickup.CodeOf(err))
			writeError(w, log, err)
			return
		}
		res, err := svc.Predict(r.Context(), req)
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, NewResponse(res))
	})
}

// StatusFor maps a prediction failure to an HTTP status.
func StatusFor(err error) int {
	if pickup.CodeOf(err) == pickup.CodeInvalidInput {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	status := StatusFor(err)
	msg := err.Error()
	var pe *pickup.Error
	if errors.As(err, &pe) {
		msg = pe.Message
	}
	if status >= http.StatusInternalServerError {
		log.Errorf("predict: %v", err)
	} else {
		log.Debugf("predict rejected: %v", err)
	}
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeJSON encodes v before touching the response so an encoding failure
// can still be reported as a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		status = http.StatusInternalServerError
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(ErrorResponse{Error: err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
