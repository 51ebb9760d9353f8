package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEnvelopeCarriesRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.Header().Set(RequestIDHeader, "host/abc-000001")
	JSON(rec, http.StatusCreated, "session booked", map[string]int{"duration": 60})

	var env struct {
		Code      int            `json:"code"`
		Message   string         `json:"message"`
		Data      map[string]int `json:"data"`
		RequestID string         `json:"request_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Code != http.StatusCreated || env.Code != http.StatusCreated {
		t.Fatalf("status = %d, code = %d", rec.Code, env.Code)
	}
	if env.RequestID != "host/abc-000001" || env.Data["duration"] != 60 {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestErrorOmitsDataAndMissingRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusConflict, "slot is no longer available")

	var raw map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := raw["data"]; ok {
		t.Fatalf("error envelope has data: %v", raw)
	}
	if _, ok := raw["request_id"]; ok {
		t.Fatalf("request_id present without middleware: %v", raw)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("content type = %q", got)
	}
}
