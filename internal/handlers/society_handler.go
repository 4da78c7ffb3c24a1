package handlers

import (
	"encoding/json"
	"net/http"

	"paddy-backend/internal/logger"
	"paddy-backend/internal/models"
	"paddy-backend/internal/services"
	"paddy-backend/pkg/utils"
)

type SocietyHandler struct {
	service *services.SocietyService
	log     *logger.Logger
}

func NewSocietyHandler(service *services.SocietyService, log *logger.Logger) *SocietyHandler {
	return &SocietyHandler{service: service, log: log}
}

func (h *SocietyHandler) respondErr(w http.ResponseWriter, op string, err error) {
	if utils.IsServerError(err) {
		h.log.Error(op+" failed", "error", err)
	}
	utils.Error(w, err)
}

// Create handles POST /api/societies
func (h *SocietyHandler) Create(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	var req models.CreateSocietyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	society, err := h.service.Create(r.Context(), tc, &req)
	if err != nil {
		h.respondErr(w, "create society", err)
		return
	}
	utils.JSON(w, http.StatusCreated, society)
}

// List handles GET /api/societies?district_id=N
func (h *SocietyHandler) List(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	societies, err := h.service.List(r.Context(), tc, queryInt(r, "district_id"))
	if err != nil {
		h.respondErr(w, "list societies", err)
		return
	}
	if societies == nil {
		societies = []*models.Society{}
	}
	utils.JSON(w, http.StatusOK, societies)
}

// Get handles GET /api/societies/{id}
func (h *SocietyHandler) Get(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid society ID", http.StatusBadRequest)
		return
	}
	society, err := h.service.Get(r.Context(), tc, id)
	if err != nil {
		h.respondErr(w, "get society", err)
		return
	}
	utils.JSON(w, http.StatusOK, society)
}

// Update handles PUT /api/societies/{id}
func (h *SocietyHandler) Update(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid society ID", http.StatusBadRequest)
		return
	}
	var req models.UpdateSocietyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	society, err := h.service.Update(r.Context(), tc, id, &req)
	if err != nil {
		h.respondErr(w, "update society", err)
		return
	}
	utils.JSON(w, http.StatusOK, society)
}

// Delete handles DELETE /api/societies/{id}
func (h *SocietyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid society ID", http.StatusBadRequest)
		return
	}
	if err := h.service.Delete(r.Context(), tc, id); err != nil {
		h.respondErr(w, "delete society", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
