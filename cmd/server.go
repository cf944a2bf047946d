package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sells-group/trialboard/internal/compare"
	"github.com/sells-group/trialboard/internal/dashboard"
	"github.com/sells-group/trialboard/internal/model"
	"github.com/sells-group/trialboard/internal/render"
)

// server holds the loaded dashboard and answers API requests. Handlers
// never mutate the shared App: each request works on a filter-scoped view
// of the same record set.
type server struct {
	app *dashboard.App
}

func newServer(app *dashboard.App) *server {
	return &server{app: app}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// stateFromQuery builds the filter state from query params: q, year,
// design, condition. Absent params stay wildcards.
func stateFromQuery(r *http.Request) model.FilterState {
	q := r.URL.Query()
	state := model.FilterState{
		SearchText: q.Get("q"),
		Design:     q.Get("design"),
		Condition:  q.Get("condition"),
	}
	if y, err := strconv.Atoi(q.Get("year")); err == nil {
		state.Year = y
	}
	return state
}

func (s *server) scoped(r *http.Request) *dashboard.App {
	return s.app.WithFilter(stateFromQuery(r))
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"studies": len(s.app.Records()),
	})
}

func (s *server) handleRecords(w http.ResponseWriter, r *http.Request) {
	records := s.scoped(r).Filtered()
	writeJSON(w, http.StatusOK, map[string]any{
		"total":   len(records),
		"records": records,
	})
}

func (s *server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.scoped(r).KPIs())
}

func (s *server) handleViewList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"views": s.app.Views().Names(),
	})
}

func (s *server) handleView(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "view")
	scoped := s.scoped(r)

	snap := render.NewSnapshot()
	if err := scoped.RenderView(snap, name); err != nil {
		writeError(w, http.StatusNotFound, "unknown view: "+name)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"view":    name,
		"charts":  snap.Charts(),
		"studies": dashboard.ListingTable(scoped.Filtered()),
	})
}

func (s *server) handleEconomics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"series": s.scoped(r).Economics(),
	})
}

func (s *server) handleStudy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, ok := s.app.Study(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown study: "+id)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"record": rec,
		"detail": dashboard.DetailTable(rec),
	})
}

// handleCompare builds the side-by-side table for ?ids=a,b,c. The
// selection rules apply unchanged: at most three studies, at least two.
func (s *server) handleCompare(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("ids"))
	if raw == "" {
		writeError(w, http.StatusBadRequest, "ids is required")
		return
	}

	scoped := s.app.WithFilter(model.FilterState{})
	var records []model.StudyRecord
	for _, id := range strings.Split(raw, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if err := scoped.Select(id); err != nil {
			if errors.Is(err, compare.ErrSelectionFull) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, http.StatusNotFound, "unknown study: "+id)
			return
		}
	}
	for _, id := range scoped.Selection() {
		rec, _ := s.app.Study(id)
		records = append(records, rec)
	}

	if !scoped.CanCompare() {
		writeError(w, http.StatusBadRequest, "select at least 2 studies to compare")
		return
	}

	writeJSON(w, http.StatusOK, dashboard.ComparisonTable(records))
}
