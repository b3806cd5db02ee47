package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"entregas/internal/deliveries"

	"github.com/rs/zerolog/log"
)

const queryDateLayout = "2006-01-02"

type loadResponse struct {
	Records  int       `json:"records"`
	LoadedAt time.Time `json:"loaded_at"`
}

type tableResponse struct {
	Date    string     `json:"date"`
	Count   int        `json:"count"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// windowFigures carries one window's summary plus display-formatted strings
// and the per-carrier breakdown.
type windowFigures struct {
	deliveries.Summary
	AvgLeadTime   string                      `json:"avg_lead_time"`
	IncidenceRate string                      `json:"incidence_rate"`
	Carriers      []deliveries.CarrierSummary `json:"carriers"`
}

type summaryResponse struct {
	Date       string        `json:"date"`
	WindowDays int           `json:"window_days"`
	Selected   windowFigures `json:"selected"`
	Window     windowFigures `json:"window"`
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.Reload(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	ds, _ := s.store.Dataset()
	writeJSON(w, http.StatusOK, loadResponse{Records: ds.Len(), LoadedAt: s.store.LoadedAt()})
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.store.Dataset()
	if !ok {
		writeError(w, http.StatusConflict, "dataset not loaded yet")
		return
	}

	day, err := s.queryDate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sub := deliveries.FilterByDate(*ds, day)
	resp := tableResponse{
		Date:    day.Format(queryDateLayout),
		Count:   sub.Len(),
		Columns: sub.Columns,
		Rows:    make([][]string, 0, sub.Len()),
	}
	for _, rec := range sub.Records {
		resp.Rows = append(resp.Rows, deliveries.DisplayRow(rec, sub.Columns))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.store.Dataset()
	if !ok {
		writeError(w, http.StatusConflict, "dataset not loaded yet")
		return
	}

	day, err := s.queryDate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	windowDays := s.cfg.DefaultWindowDays
	if raw := r.URL.Query().Get("window"); raw != "" {
		windowDays, err = strconv.Atoi(raw)
		if err != nil || windowDays < 1 {
			writeError(w, http.StatusBadRequest, "window must be an integer >= 1")
			return
		}
	}

	selected := deliveries.FilterByDate(*ds, day)
	ranged := deliveries.FilterByRange(*ds, day, windowDays)

	writeJSON(w, http.StatusOK, summaryResponse{
		Date:       day.Format(queryDateLayout),
		WindowDays: windowDays,
		Selected:   s.figures(selected),
		Window:     s.figures(ranged),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.store.Dataset()
	if !ok {
		writeError(w, http.StatusConflict, "dataset not loaded yet")
		return
	}

	data, err := deliveries.ToCSV(*ds)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	filename := deliveries.ExportFilename(time.Now().In(s.store.Location()))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(data); err != nil {
		log.Warn().Err(err).Msg("Failed to write CSV export response")
	}
}

func (s *Server) figures(sub deliveries.Dataset) windowFigures {
	summary := deliveries.Summarize(sub)
	return windowFigures{
		Summary:       summary,
		AvgLeadTime:   deliveries.FormatLeadTime(summary.AvgLeadTimeHours),
		IncidenceRate: deliveries.FormatPercent(summary.IncidenceRatePct),
		Carriers:      deliveries.AggregateByCarrier(sub, s.cfg.CarrierNaNBucket),
	}
}

// queryDate parses the "date" query parameter in the configured zone,
// defaulting to yesterday like the legacy dashboard.
func (s *Server) queryDate(r *http.Request) (time.Time, error) {
	loc := s.store.Location()
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return deliveries.DayOf(time.Now().In(loc).AddDate(0, 0, -1), loc), nil
	}
	day, err := time.ParseInLocation(queryDateLayout, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return day, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("Failed to encode JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
