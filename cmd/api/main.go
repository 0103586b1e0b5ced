package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/ufabox/InfoViz-25W-A3/internal/aggregator"
	"github.com/ufabox/InfoViz-25W-A3/internal/grid"
	"github.com/ufabox/InfoViz-25W-A3/internal/labels"
	"github.com/ufabox/InfoViz-25W-A3/internal/logger"
	"github.com/ufabox/InfoViz-25W-A3/internal/metric"
	"github.com/ufabox/InfoViz-25W-A3/internal/pipeline"
	"github.com/ufabox/InfoViz-25W-A3/internal/scale"
	"github.com/ufabox/InfoViz-25W-A3/internal/types"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "casualty-grid").Info("starting service")

	dataPath := envOr("DATASET_PATH", "casualties.csv")
	opts := aggregator.Options{
		DropUnknownSeverity: os.Getenv("DROP_UNKNOWN_SEVERITY") == "true",
	}

	// Single ingestion pass; a load failure means no grid is served at all.
	log.WithField("dataset_path", dataPath).Info("loading casualty records")
	res, err := pipeline.Run(dataPath, opts)
	if err != nil {
		log.WithError(err).Fatal("failed to load casualty records")
	}
	log.WithField("cells", len(res.Cells)).WithField("retained", res.Retained).Info("cell table built")

	mgr, err := scale.New(res.Cells, envOr("DEFAULT_METRIC", metric.Default))
	if err != nil {
		log.WithError(err).Fatal("invalid default metric")
	}
	surface := grid.New(res.Cells, mgr)
	mux := newMux(surface)

	addr := fmt.Sprintf(":%s", envOr("PORT", "8080"))
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

func newMux(surface *grid.Surface) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Info("health check")
		fmt.Fprint(w, "ok")
	})

	// grid page; ?metric= applies a selection before painting
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "grid")
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if name := r.URL.Query().Get("metric"); name != "" {
			if err := surface.Select(name); err != nil {
				reqLog.WithError(err).Warn("metric selection rejected")
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := surface.RenderHTML(w); err != nil {
			reqLog.WithError(err).Error("render failed")
		}
	})

	mux.HandleFunc("/api/grid", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).WithField("handler", "api.grid").Info("grid snapshot")
		writeJSON(w, surface.Snapshot())
	})

	// metric selection; the snapshot in the response is the repaint
	mux.HandleFunc("/api/metric", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "api.metric")
		name := r.URL.Query().Get("name")
		if name == "" {
			http.Error(w, "missing name", http.StatusBadRequest)
			return
		}
		if err := surface.Select(name); err != nil {
			reqLog.WithError(err).Warn("metric selection rejected")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, surface.Snapshot())
	})

	// hover tooltip data
	mux.HandleFunc("/api/hover", func(w http.ResponseWriter, r *http.Request) {
		band, err1 := strconv.Atoi(r.URL.Query().Get("age_band"))
		role, err2 := strconv.Atoi(r.URL.Query().Get("role"))
		if err1 != nil || err2 != nil {
			http.Error(w, "age_band and role must be integers", http.StatusBadRequest)
			return
		}
		cell, ok := surface.Hover(types.CellKey{AgeBand: band, Role: role})
		writeJSON(w, hoverResponse(band, role, cell, ok))
	})

	mux.HandleFunc("/api/unhover", func(w http.ResponseWriter, r *http.Request) {
		surface.Unhover()
		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}

type hoverPayload struct {
	Found        bool        `json:"found"`
	AgeBandLabel string      `json:"age_band_label"`
	RoleLabel    string      `json:"role_label"`
	Cell         *types.Cell `json:"cell,omitempty"`
}

func hoverResponse(band, role int, cell types.Cell, ok bool) hoverPayload {
	p := hoverPayload{
		Found:        ok,
		AgeBandLabel: labels.AgeBand(band),
		RoleLabel:    labels.Role(role),
	}
	if ok {
		p.Cell = &cell
	}
	return p
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.New().WithError(err).Error("failed to write response")
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
