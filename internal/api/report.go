package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"margin-desk/internal/logger"
	"margin-desk/internal/report"
)

// uploadLimit caps report files at 20 MiB. Dashboard exports are
// typically well under 1 MiB.
const uploadLimit = 20 << 20

// handleReportUpload parses an uploaded ad report, picks the best
// candidate table, resolves its columns and filters to active rows. The
// resulting batch is held in memory for review.
//
// A document with no detectable table is not an error from the client's
// point of view: it answers 200 with no_data so the session continues.
func (s *Server) handleReportUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploadLimit); err != nil {
		writeError(w, 400, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, 400, "file field required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, uploadLimit))
	if err != nil {
		writeError(w, 500, "read upload: "+err.Error())
		return
	}

	format, ok := report.FormatFromFilename(header.Filename)
	if override := r.FormValue("format"); override != "" {
		format, ok = report.Format(override), true
	}
	if !ok {
		writeError(w, 400, "unsupported file type: "+header.Filename)
		return
	}

	tables, err := report.ExtractTables(data, format)
	if errors.Is(err, report.ErrNoTableDetected) {
		writeJSON(w, map[string]interface{}{"no_data": true})
		return
	}
	if err != nil {
		writeError(w, 400, "parse "+string(format)+": "+err.Error())
		return
	}

	best, ok := report.SelectBestTable(tables)
	if !ok {
		writeJSON(w, map[string]interface{}{"no_data": true})
		return
	}
	mapping := report.ResolveColumns(best)

	rows, err := report.ExtractActiveRows(best, mapping)
	if errors.Is(err, report.ErrMissingColumns) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(422)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":   "could not identify status and campaign columns; rename the headers and re-upload",
			"Mapping": mapping,
			"Columns": best.Columns,
		})
		return
	}
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}

	batch := &reviewBatch{
		ID:        uuid.NewString(),
		FileName:  header.Filename,
		TableName: best.Name,
		Mapping:   mapping,
		Rows:      rows,
		CreatedAt: time.Now(),
	}
	s.batchesMu.Lock()
	s.batches[batch.ID] = batch
	s.batchesMu.Unlock()

	reportUploads.WithLabelValues(string(format)).Inc()
	logger.Success("REPORT", header.Filename+": "+best.Name)
	writeJSON(w, batch)
}

func (s *Server) handleGetBatch(w http.ResponseWriter, r *http.Request) {
	s.batchesMu.RLock()
	batch, ok := s.batches[chi.URLParam(r, "batchID")]
	s.batchesMu.RUnlock()
	if !ok {
		writeError(w, 404, "unknown batch")
		return
	}
	writeJSON(w, batch)
}

type editRowRequest struct {
	Campaign *string  `json:"Campaign"`
	AdQty    *float64 `json:"AdQty"`
	AdRev    *float64 `json:"AdRev"`
	AdCost   *float64 `json:"AdCost"`
}

// handleEditRow amends one reviewed row in place. Only fields present in
// the body change; numeric fields can be set but not cleared.
func (s *Server) handleEditRow(w http.ResponseWriter, r *http.Request) {
	var req editRowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid json")
		return
	}

	s.batchesMu.Lock()
	defer s.batchesMu.Unlock()

	batch, ok := s.batches[chi.URLParam(r, "batchID")]
	if !ok {
		writeError(w, 404, "unknown batch")
		return
	}
	var row *report.Row
	for i := range batch.Rows {
		if strconv.Itoa(batch.Rows[i].RowID) == chi.URLParam(r, "rowID") {
			row = &batch.Rows[i]
			break
		}
	}
	if row == nil {
		writeError(w, 404, "unknown row")
		return
	}

	if req.Campaign != nil {
		row.Campaign = *req.Campaign
	}
	if req.AdQty != nil {
		row.AdQty = req.AdQty
	}
	if req.AdRev != nil {
		row.AdRev = req.AdRev
	}
	if req.AdCost != nil {
		row.AdCost = req.AdCost
	}
	writeJSON(w, row)
}
