// Package respond writes the API's JSON envelope.
package respond

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request id on responses. When middleware has
// set it, the envelope repeats it so clients can quote it in support requests.
const RequestIDHeader = "X-Request-Id"

// Envelope wraps every API response.
type Envelope struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// JSON writes a success response with data.
func JSON(w http.ResponseWriter, status int, message string, data any) {
	write(w, Envelope{Code: status, Message: message, Data: data})
}

// Error writes an error response. Callers pass a client-safe message; causes
// belong in the log.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, Envelope{Code: status, Message: message})
}

func write(w http.ResponseWriter, payload Envelope) {
	payload.RequestID = w.Header().Get(RequestIDHeader)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(payload.Code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Warn("encode response envelope",
			zap.Int("status", payload.Code),
			zap.String("request_id", payload.RequestID),
			zap.Error(err),
		)
	}
}
