package api

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"margin-desk/internal/db"
	"margin-desk/internal/logger"
)

func (s *Server) handleListSettlements(w http.ResponseWriter, r *http.Request) {
	list, err := s.db.ListSettlements()
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	if list == nil {
		list = []db.Settlement{}
	}
	writeJSON(w, list)
}

// handleSaveSettlements persists a batch of reviewed records. Each
// record gets today's date when none is given.
func (s *Server) handleSaveSettlements(w http.ResponseWriter, r *http.Request) {
	var records []db.Settlement
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		writeError(w, 400, "invalid json")
		return
	}
	if len(records) == 0 {
		writeError(w, 400, "no records")
		return
	}

	today := time.Now().Format("2006-01-02")
	saved := make([]db.Settlement, 0, len(records))
	for _, rec := range records {
		if rec.Date == "" {
			rec.Date = today
		}
		id, err := s.db.InsertSettlement(rec)
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}
		rec.ID = id
		saved = append(saved, rec)
	}

	settlementsSaved.Add(float64(len(saved)))
	logger.Info("SETTLE", "saved "+strconv.Itoa(len(saved))+" records")
	writeJSON(w, saved)
}

func (s *Server) handleDeleteSettlement(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, 400, "invalid id")
		return
	}
	if err := s.db.DeleteSettlement(id); err != nil {
		writeError(w, 500, err.Error())
		return
	}
	writeJSON(w, map[string]bool{"deleted": true})
}

// handleExportSettlements streams all records as CSV. The UTF-8 BOM is
// deliberate: without it Excel renders Korean campaign names as mojibake.
func (s *Server) handleExportSettlements(w http.ResponseWriter, r *http.Request) {
	list, err := s.db.ListSettlements()
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="settlements.csv"`)
	w.Write([]byte("\xEF\xBB\xBF"))

	cw := csv.NewWriter(w)
	cw.Write([]string{
		"date", "product_name", "campaign_name", "total_sales_qty",
		"total_revenue", "coupon_unit", "ad_sales_qty", "ad_revenue", "ad_cost",
	})
	for _, rec := range list {
		cw.Write([]string{
			rec.Date,
			rec.ProductName,
			rec.CampaignName,
			formatAmount(rec.TotalSalesQty),
			formatAmount(rec.TotalRevenue),
			formatAmount(rec.CouponUnit),
			formatAmount(rec.AdSalesQty),
			formatAmount(rec.AdRevenue),
			formatAmount(rec.AdCost),
		})
	}
	cw.Flush()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
