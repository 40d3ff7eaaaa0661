// Package httpapi exposes the demo service's HTTP surface: a client-IP
// echo, a greeting endpoint, and a health probe.
package httpapi

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workingdad365/gitops-test/internal/clientaddr"
	"github.com/workingdad365/gitops-test/internal/config"
)

// ipResponse is the body of GET /ip.
type ipResponse struct {
	IP string `json:"ip"`
}

// rootResponse is the body of GET /.
type rootResponse struct {
	Message string `json:"message"`
	IP      string `json:"ip"`
}

// greetingResponse is the body of GET /sayhello.
type greetingResponse struct {
	Message string `json:"message"`
}

// NewRouter builds the demo service router.
func NewRouter(cfg config.ServerConfig) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("ok")); err != nil {
			log.Printf("write error: %v", err)
		}
	})

	r.Get("/ip", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, ipResponse{IP: clientaddr.FromRequest(req)})
	})

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, rootResponse{Message: "ok", IP: clientaddr.FromRequest(req)})
	})

	r.Get("/sayhello", func(w http.ResponseWriter, req *http.Request) {
		// GREETING_MESSAGE is read per request, not cached at startup.
		writeJSON(w, greetingResponse{Message: cfg.GreetingMessage()})
	})

	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write error: %v", err)
	}
}
