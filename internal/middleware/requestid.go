package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/anuragmoyde/mentor4all-sub000/internal/http/respond"
)

// EchoRequestID copies the id assigned by chi's RequestID middleware onto the
// response header, where respond picks it up for the envelope.
func EchoRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			w.Header().Set(respond.RequestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	})
}
