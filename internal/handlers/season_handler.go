package handlers

import (
	"encoding/json"
	"net/http"

	"paddy-backend/internal/logger"
	"paddy-backend/internal/models"
	"paddy-backend/internal/services"
	"paddy-backend/pkg/utils"
)

type SeasonHandler struct {
	service *services.SeasonService
	log     *logger.Logger
}

func NewSeasonHandler(service *services.SeasonService, log *logger.Logger) *SeasonHandler {
	return &SeasonHandler{service: service, log: log}
}

func (h *SeasonHandler) respondErr(w http.ResponseWriter, op string, err error) {
	if utils.IsServerError(err) {
		h.log.Error(op+" failed", "error", err)
	}
	utils.Error(w, err)
}

// Create handles POST /api/seasons
func (h *SeasonHandler) Create(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	var req models.CreateSeasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	season, err := h.service.Create(r.Context(), tc, &req)
	if err != nil {
		h.respondErr(w, "create season", err)
		return
	}
	utils.JSON(w, http.StatusCreated, season)
}

// List handles GET /api/seasons
func (h *SeasonHandler) List(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	seasons, err := h.service.List(r.Context(), tc)
	if err != nil {
		h.respondErr(w, "list seasons", err)
		return
	}
	if seasons == nil {
		seasons = []*models.Season{}
	}
	utils.JSON(w, http.StatusOK, seasons)
}

// GetActive handles GET /api/seasons/active
func (h *SeasonHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	season, err := h.service.GetActive(r.Context(), tc)
	if err != nil {
		h.respondErr(w, "get active season", err)
		return
	}
	utils.JSON(w, http.StatusOK, season)
}

// Get handles GET /api/seasons/{id}
func (h *SeasonHandler) Get(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid season ID", http.StatusBadRequest)
		return
	}
	season, err := h.service.Get(r.Context(), tc, id)
	if err != nil {
		h.respondErr(w, "get season", err)
		return
	}
	utils.JSON(w, http.StatusOK, season)
}

// Update handles PUT /api/seasons/{id}
func (h *SeasonHandler) Update(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid season ID", http.StatusBadRequest)
		return
	}
	var req models.UpdateSeasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	season, err := h.service.Update(r.Context(), tc, id, &req)
	if err != nil {
		h.respondErr(w, "update season", err)
		return
	}
	utils.JSON(w, http.StatusOK, season)
}

// Delete handles DELETE /api/seasons/{id}
func (h *SeasonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid season ID", http.StatusBadRequest)
		return
	}
	if err := h.service.Delete(r.Context(), tc, id); err != nil {
		h.respondErr(w, "delete season", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetActive handles POST /api/seasons/{id}/activate
func (h *SeasonHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid season ID", http.StatusBadRequest)
		return
	}
	season, err := h.service.SetActive(r.Context(), tc, id)
	if err != nil {
		h.respondErr(w, "activate season", err)
		return
	}
	utils.JSON(w, http.StatusOK, season)
}

// SetTargets handles PUT /api/seasons/{id}/targets
func (h *SeasonHandler) SetTargets(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid season ID", http.StatusBadRequest)
		return
	}
	var req models.SetTargetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	count, err := h.service.SetTargets(r.Context(), tc, id, &req)
	if err != nil {
		h.respondErr(w, "set targets", err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]int{"updated": count})
}

// GetTargets handles GET /api/seasons/{id}/targets
func (h *SeasonHandler) GetTargets(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid season ID", http.StatusBadRequest)
		return
	}
	targets, err := h.service.GetTargets(r.Context(), tc, id)
	if err != nil {
		h.respondErr(w, "get targets", err)
		return
	}
	if targets == nil {
		targets = []models.SocietyTargetRow{}
	}
	utils.JSON(w, http.StatusOK, targets)
}
