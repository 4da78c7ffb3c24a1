package handlers

import (
	"encoding/json"
	"net/http"

	"paddy-backend/internal/logger"
	"paddy-backend/internal/metrics"
	"paddy-backend/internal/models"
	"paddy-backend/internal/services"
	"paddy-backend/pkg/utils"
)

type ReportHandler struct {
	service *services.ReportService
	log     *logger.Logger
}

func NewReportHandler(service *services.ReportService, log *logger.Logger) *ReportHandler {
	return &ReportHandler{service: service, log: log}
}

// Generate handles POST /api/reports/generate
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	var req models.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	report, err := h.service.Generate(r.Context(), tc, &req)
	if err != nil {
		if utils.IsServerError(err) {
			h.log.Error("generate report failed", "type", req.ReportType, "error", err)
		}
		utils.Error(w, err)
		return
	}

	metrics.ReportsGenerated.WithLabelValues(report.Type).Inc()
	utils.JSON(w, http.StatusOK, report)
}
