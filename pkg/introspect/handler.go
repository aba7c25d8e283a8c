package introspect

import (
	"encoding/json"
	"net/http"

	"github.com/aretw0/canopy/pkg/viz"
	"github.com/go-chi/chi/v5"
)

// NewHandler serves the latest snapshot from src:
//
//	GET /tree     JSON snapshot
//	GET /mermaid  Mermaid flowchart, text/plain
//	GET /healthz  liveness probe
//
// Tree endpoints answer 404 until a first snapshot is published.
func NewHandler(src SnapshotSource) http.Handler {
	r := chi.NewRouter()

	r.Get("/tree", func(w http.ResponseWriter, _ *http.Request) {
		snap := src.Latest()
		if snap == nil {
			http.Error(w, "no snapshot published yet", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snap); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	r.Get("/mermaid", func(w http.ResponseWriter, _ *http.Request) {
		snap := src.Latest()
		if snap == nil {
			http.Error(w, "no snapshot published yet", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(viz.Mermaid(snap.Tree)))
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
