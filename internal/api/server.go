package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"margin-desk/internal/config"
	"margin-desk/internal/db"
	"margin-desk/internal/logger"
	"margin-desk/internal/report"
)

// Server is the HTTP API connecting the margin engine, report resolver
// and settlement store.
type Server struct {
	db *db.DB

	mu  sync.RWMutex
	cfg *config.Config

	// Parsed upload batches under review, keyed by batch ID. Review
	// state lives in memory only; rows survive until saved as
	// settlements or until the process exits.
	batchesMu sync.RWMutex
	batches   map[string]*reviewBatch
}

// reviewBatch holds the rows of one parsed upload while the operator
// reviews and edits them.
type reviewBatch struct {
	ID        string                  `json:"BatchID"`
	FileName  string                  `json:"FileName"`
	TableName string                  `json:"TableName"`
	Mapping   map[report.Field]string `json:"Mapping"`
	Rows      []report.Row            `json:"Rows"`
	CreatedAt time.Time               `json:"CreatedAt"`
}

// NewServer creates a Server with the given persisted config snapshot
// and database.
func NewServer(cfg *config.Config, database *db.DB) *Server {
	return &Server{
		db:      database,
		cfg:     cfg,
		batches: make(map[string]*reviewBatch),
	}
}

// cfgSnapshot returns an immutable per-request copy of the config so an
// in-flight calculation never observes a concurrent save.
func (s *Server) cfgSnapshot() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Clone()
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(corsMiddleware)

	r.Get("/api/status", s.handleStatus)
	r.Get("/api/config", s.handleGetConfig)
	r.Post("/api/config", s.handleSetConfig)

	r.Post("/api/margin/compute", s.handleCompute)
	r.Post("/api/margin/solve", s.handleSolve)

	r.Post("/api/report/upload", s.handleReportUpload)
	r.Get("/api/report/{batchID}", s.handleGetBatch)
	r.Put("/api/report/{batchID}/rows/{rowID}", s.handleEditRow)

	r.Get("/api/settlements", s.handleListSettlements)
	r.Post("/api/settlements", s.handleSaveSettlements)
	r.Delete("/api/settlements/{id}", s.handleDeleteSettlement)
	r.Get("/api/settlements/export", s.handleExportSettlements)

	r.Handle("/metrics", promhttp.Handler())
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("HTTP", r.Method+" "+r.URL.Path+" ("+time.Since(start).Round(time.Millisecond).String()+")")
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(204)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	settlements, err := s.db.ListSettlements()
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	s.batchesMu.RLock()
	batchCount := len(s.batches)
	s.batchesMu.RUnlock()

	writeJSON(w, map[string]interface{}{
		"settlements":    len(settlements),
		"review_batches": batchCount,
	})
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.cfgSnapshot())
}

// handleSetConfig applies a partial update: only keys present in the
// body change, invariants are re-clamped, and the result is persisted
// before it becomes visible to new requests.
func (s *Server) handleSetConfig(w http.ResponseWriter, r *http.Request) {
	var patch map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, 400, "invalid json")
		return
	}

	next := s.cfgSnapshot()
	apply := func(key string, dst *float64) error {
		if v, ok := patch[key]; ok {
			if err := json.Unmarshal(v, dst); err != nil {
				return fmt.Errorf("%s must be a number", key)
			}
		}
		return nil
	}
	for key, dst := range map[string]*float64{
		"fee_rate":       &next.FeeRate,
		"ad_rate":        &next.AdRate,
		"inout_cost":     &next.InOutCost,
		"pickup_cost":    &next.PickupCost,
		"restock_cost":   &next.RestockCost,
		"return_rate":    &next.ReturnRate,
		"etc_rate":       &next.EtcRate,
		"exchange_rate":  &next.ExchangeRate,
		"packaging_cost": &next.PackagingCost,
		"gift_cost":      &next.GiftCost,
	} {
		if err := apply(key, dst); err != nil {
			writeError(w, 400, err.Error())
			return
		}
	}
	next.Normalize()

	if err := s.db.SaveConfig(next); err != nil {
		writeError(w, 500, "save config: "+err.Error())
		return
	}

	s.mu.Lock()
	s.cfg = next
	s.mu.Unlock()
	writeJSON(w, next)
}
