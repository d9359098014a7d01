package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"margin-desk/internal/engine"
)

type computeRequest struct {
	SellPrice int64 `json:"sell_price"`
	Quantity  int64 `json:"quantity"`

	// Exactly one of the two cost forms must be present: a local-currency
	// unit cost, or a foreign-currency unit price converted through the
	// configured exchange rate.
	UnitCost         *float64 `json:"unit_cost"`
	ForeignUnitPrice *float64 `json:"foreign_unit_price"`

	EtcIncludesVAT bool `json:"etc_includes_vat"`
}

func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	var req computeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid json")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	cfg := s.cfgSnapshot()

	var unitCost decimal.Decimal
	switch {
	case req.UnitCost != nil:
		unitCost = decimal.NewFromFloat(*req.UnitCost)
	case req.ForeignUnitPrice != nil:
		converted, err := engine.UnitCostFromForeign(*req.ForeignUnitPrice, cfg)
		if err != nil {
			writeError(w, 400, "invalid foreign unit price")
			return
		}
		unitCost = converted
	default:
		writeError(w, 400, "unit_cost or foreign_unit_price required")
		return
	}

	b, err := engine.ComputeMargin(req.SellPrice, req.Quantity, unitCost, cfg, req.EtcIncludesVAT)
	if errors.Is(err, engine.ErrInvalidInput) {
		writeError(w, 400, "invalid numeric input")
		return
	}
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	marginComputes.Inc()
	writeJSON(w, b)
}

type solveRequest struct {
	SellPrice    int64   `json:"sell_price"`
	TargetMargin float64 `json:"target_margin"`
	Quantity     int64   `json:"quantity"`
	Mode         string  `json:"mode"` // quick | accurate
}

type solveResponse struct {
	engine.SolveResult
	Mode string `json:"Mode"`
	// Infeasible flags a negative max cost from the accurate mode: the
	// target margin cannot be reached at this sell price.
	Infeasible bool `json:"Infeasible"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid json")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	cfg := s.cfgSnapshot()

	var (
		res engine.SolveResult
		err error
	)
	switch req.Mode {
	case "quick":
		res, err = engine.SolveCostQuick(req.SellPrice, req.TargetMargin, cfg)
	case "accurate", "":
		res, err = engine.SolveCostAccurate(req.SellPrice, req.TargetMargin, req.Quantity, cfg)
	default:
		writeError(w, 400, "mode must be quick or accurate")
		return
	}
	if errors.Is(err, engine.ErrInvalidInput) {
		writeError(w, 400, "invalid numeric input")
		return
	}
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}

	mode := req.Mode
	if mode == "" {
		mode = "accurate"
	}
	writeJSON(w, solveResponse{
		SolveResult: res,
		Mode:        mode,
		Infeasible:  res.MaxUnitCost < 0,
	})
}
