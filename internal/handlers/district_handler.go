package handlers

import (
	"encoding/json"
	"net/http"

	"paddy-backend/internal/logger"
	"paddy-backend/internal/models"
	"paddy-backend/internal/services"
	"paddy-backend/pkg/utils"
)

type DistrictHandler struct {
	service *services.DistrictService
	log     *logger.Logger
}

func NewDistrictHandler(service *services.DistrictService, log *logger.Logger) *DistrictHandler {
	return &DistrictHandler{service: service, log: log}
}

func (h *DistrictHandler) respondErr(w http.ResponseWriter, op string, err error) {
	if utils.IsServerError(err) {
		h.log.Error(op+" failed", "error", err)
	}
	utils.Error(w, err)
}

// Create handles POST /api/districts
func (h *DistrictHandler) Create(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	var req models.CreateDistrictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	district, err := h.service.Create(r.Context(), tc, &req)
	if err != nil {
		h.respondErr(w, "create district", err)
		return
	}
	utils.JSON(w, http.StatusCreated, district)
}

// List handles GET /api/districts
func (h *DistrictHandler) List(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	districts, err := h.service.List(r.Context(), tc)
	if err != nil {
		h.respondErr(w, "list districts", err)
		return
	}
	if districts == nil {
		districts = []*models.District{}
	}
	utils.JSON(w, http.StatusOK, districts)
}

// Get handles GET /api/districts/{id}
func (h *DistrictHandler) Get(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid district ID", http.StatusBadRequest)
		return
	}
	district, err := h.service.Get(r.Context(), tc, id)
	if err != nil {
		h.respondErr(w, "get district", err)
		return
	}
	utils.JSON(w, http.StatusOK, district)
}

// Update handles PUT /api/districts/{id}
func (h *DistrictHandler) Update(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid district ID", http.StatusBadRequest)
		return
	}
	var req models.UpdateDistrictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	district, err := h.service.Update(r.Context(), tc, id, &req)
	if err != nil {
		h.respondErr(w, "update district", err)
		return
	}
	utils.JSON(w, http.StatusOK, district)
}

// Delete handles DELETE /api/districts/{id}
func (h *DistrictHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid district ID", http.StatusBadRequest)
		return
	}
	if err := h.service.Delete(r.Context(), tc, id); err != nil {
		h.respondErr(w, "delete district", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
