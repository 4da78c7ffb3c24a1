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

type EntryHandler struct {
	service *services.EntryService
	log     *logger.Logger
}

func NewEntryHandler(service *services.EntryService, log *logger.Logger) *EntryHandler {
	return &EntryHandler{service: service, log: log}
}

func (h *EntryHandler) respondErr(w http.ResponseWriter, op string, err error) {
	if utils.IsServerError(err) {
		h.log.Error(op+" failed", "error", err)
	}
	utils.Error(w, err)
}

// Create handles POST /api/entries
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	var req models.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	entry, err := h.service.Create(r.Context(), tc, &req)
	if err != nil {
		h.respondErr(w, "create entry", err)
		return
	}
	metrics.EntriesRecorded.Inc()
	metrics.QuantityReceived.Add(entry.Quantity)
	utils.JSON(w, http.StatusCreated, entry)
}

// List handles GET /api/entries with filter, sort, and pagination params.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	filter := &models.EntryFilter{
		SocietyID:   queryInt(r, "society_id"),
		DistrictID:  queryInt(r, "district_id"),
		SeasonID:    queryInt(r, "season_id"),
		PartyID:     queryInt(r, "party_id"),
		VehicleType: q.Get("vehicle_type"),
		Search:      q.Get("search"),
		FromDate:    q.Get("from_date"),
		ToDate:      q.Get("to_date"),
		Page:        queryInt(r, "page"),
		Limit:       queryInt(r, "limit"),
		SortBy:      q.Get("sort_by"),
		SortOrder:   q.Get("sort_order"),
	}

	page, err := h.service.List(r.Context(), tc, filter)
	if err != nil {
		h.respondErr(w, "list entries", err)
		return
	}
	utils.JSON(w, http.StatusOK, page)
}

// Get handles GET /api/entries/{id}
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid entry ID", http.StatusBadRequest)
		return
	}
	entry, err := h.service.Get(r.Context(), tc, id)
	if err != nil {
		h.respondErr(w, "get entry", err)
		return
	}
	utils.JSON(w, http.StatusOK, entry)
}

// Update handles PATCH /api/entries/{id}
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid entry ID", http.StatusBadRequest)
		return
	}
	var req models.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	entry, err := h.service.Update(r.Context(), tc, id, &req)
	if err != nil {
		h.respondErr(w, "update entry", err)
		return
	}
	utils.JSON(w, http.StatusOK, entry)
}

// Delete handles DELETE /api/entries/{id}
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tc, ok := tenant(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid entry ID", http.StatusBadRequest)
		return
	}
	if err := h.service.Delete(r.Context(), tc, id); err != nil {
		h.respondErr(w, "delete entry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
