package handlers

import (
	"net/http"

	"paddy-backend/internal/logger"
	"paddy-backend/internal/models"
	"paddy-backend/internal/services"
	"paddy-backend/pkg/utils"
)

type DashboardHandler struct {
	service *services.DashboardService
	log     *logger.Logger
}

func NewDashboardHandler(service *services.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, log: log}
}

func (h *DashboardHandler) respondErr(w http.ResponseWriter, op string, err error) {
	if utils.IsServerError(err) {
		h.log.Error(op+" failed", "error", err)
	}
	utils.Error(w, err)
}

// Stats handles GET /api/dashboard/stats?season_id=N (active season when omitted).
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	stats, err := h.service.Stats(r.Context(), tc, queryInt(r, "season_id"))
	if err != nil {
		h.respondErr(w, "dashboard stats", err)
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}

// Chart handles GET /api/dashboard/chart?group_by=society|district&season_id=N
func (h *DashboardHandler) Chart(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	groupBy := r.URL.Query().Get("group_by")
	if groupBy == "" {
		groupBy = "society"
	}
	points, err := h.service.Chart(r.Context(), tc, queryInt(r, "season_id"), groupBy)
	if err != nil {
		h.respondErr(w, "dashboard chart", err)
		return
	}
	if points == nil {
		points = []models.ChartPoint{}
	}
	utils.JSON(w, http.StatusOK, points)
}

// Trend handles GET /api/dashboard/trend?season_id=N&from_date=...&to_date=...
func (h *DashboardHandler) Trend(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	points, err := h.service.Trend(r.Context(), tc, queryInt(r, "season_id"), q.Get("from_date"), q.Get("to_date"))
	if err != nil {
		h.respondErr(w, "dashboard trend", err)
		return
	}
	if points == nil {
		points = []models.TrendPoint{}
	}
	utils.JSON(w, http.StatusOK, points)
}
