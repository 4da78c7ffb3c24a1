package handlers

import (
	"encoding/json"
	"net/http"

	"paddy-backend/internal/logger"
	"paddy-backend/internal/models"
	"paddy-backend/internal/services"
	"paddy-backend/pkg/utils"
)

type PartyHandler struct {
	service *services.PartyService
	log     *logger.Logger
}

func NewPartyHandler(service *services.PartyService, log *logger.Logger) *PartyHandler {
	return &PartyHandler{service: service, log: log}
}

func (h *PartyHandler) respondErr(w http.ResponseWriter, op string, err error) {
	if utils.IsServerError(err) {
		h.log.Error(op+" failed", "error", err)
	}
	utils.Error(w, err)
}

// Create handles POST /api/parties
func (h *PartyHandler) Create(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	var req models.CreatePartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	party, err := h.service.Create(r.Context(), tc, &req)
	if err != nil {
		h.respondErr(w, "create party", err)
		return
	}
	utils.JSON(w, http.StatusCreated, party)
}

// List handles GET /api/parties?society_id=N&search=...
func (h *PartyHandler) List(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	parties, err := h.service.List(r.Context(), tc, queryInt(r, "society_id"), r.URL.Query().Get("search"))
	if err != nil {
		h.respondErr(w, "list parties", err)
		return
	}
	if parties == nil {
		parties = []*models.Party{}
	}
	utils.JSON(w, http.StatusOK, parties)
}

// Get handles GET /api/parties/{id}
func (h *PartyHandler) Get(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid party ID", http.StatusBadRequest)
		return
	}
	party, err := h.service.Get(r.Context(), tc, id)
	if err != nil {
		h.respondErr(w, "get party", err)
		return
	}
	utils.JSON(w, http.StatusOK, party)
}

// Update handles PUT /api/parties/{id}
func (h *PartyHandler) Update(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid party ID", http.StatusBadRequest)
		return
	}
	var req models.UpdatePartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	party, err := h.service.Update(r.Context(), tc, id, &req)
	if err != nil {
		h.respondErr(w, "update party", err)
		return
	}
	utils.JSON(w, http.StatusOK, party)
}

// Delete handles DELETE /api/parties/{id}
func (h *PartyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid party ID", http.StatusBadRequest)
		return
	}
	if err := h.service.Delete(r.Context(), tc, id); err != nil {
		h.respondErr(w, "delete party", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
