package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"paddy-backend/internal/handlers"
	"paddy-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	seasonHandler *handlers.SeasonHandler,
	districtHandler *handlers.DistrictHandler,
	societyHandler *handlers.SocietyHandler,
	partyHandler *handlers.PartyHandler,
	entryHandler *handlers.EntryHandler,
	dashboardHandler *handlers.DashboardHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	// Protected API routes - Seasons
	seasonsAPI := r.PathPrefix("/api/seasons").Subrouter()
	seasonsAPI.Use(authMiddleware.Authenticate)
	seasonsAPI.HandleFunc("", seasonHandler.List).Methods("GET")
	seasonsAPI.HandleFunc("", middleware.RequireRole("admin")(http.HandlerFunc(seasonHandler.Create)).ServeHTTP).Methods("POST")
	seasonsAPI.HandleFunc("/active", seasonHandler.GetActive).Methods("GET")
	seasonsAPI.HandleFunc("/{id}", seasonHandler.Get).Methods("GET")
	seasonsAPI.HandleFunc("/{id}", middleware.RequireRole("admin")(http.HandlerFunc(seasonHandler.Update)).ServeHTTP).Methods("PUT")
	seasonsAPI.HandleFunc("/{id}", middleware.RequireRole("admin")(http.HandlerFunc(seasonHandler.Delete)).ServeHTTP).Methods("DELETE")
	seasonsAPI.HandleFunc("/{id}/activate", middleware.RequireRole("admin")(http.HandlerFunc(seasonHandler.SetActive)).ServeHTTP).Methods("POST")
	seasonsAPI.HandleFunc("/{id}/targets", seasonHandler.GetTargets).Methods("GET")
	seasonsAPI.HandleFunc("/{id}/targets", middleware.RequireRole("admin")(http.HandlerFunc(seasonHandler.SetTargets)).ServeHTTP).Methods("PUT")

	// Protected API routes - Districts
	districtsAPI := r.PathPrefix("/api/districts").Subrouter()
	districtsAPI.Use(authMiddleware.Authenticate)
	districtsAPI.HandleFunc("", districtHandler.List).Methods("GET")
	districtsAPI.HandleFunc("", middleware.RequireRole("admin")(http.HandlerFunc(districtHandler.Create)).ServeHTTP).Methods("POST")
	districtsAPI.HandleFunc("/{id}", districtHandler.Get).Methods("GET")
	districtsAPI.HandleFunc("/{id}", middleware.RequireRole("admin")(http.HandlerFunc(districtHandler.Update)).ServeHTTP).Methods("PUT")
	districtsAPI.HandleFunc("/{id}", middleware.RequireRole("admin")(http.HandlerFunc(districtHandler.Delete)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Societies
	societiesAPI := r.PathPrefix("/api/societies").Subrouter()
	societiesAPI.Use(authMiddleware.Authenticate)
	societiesAPI.HandleFunc("", societyHandler.List).Methods("GET")
	societiesAPI.HandleFunc("", middleware.RequireRole("admin")(http.HandlerFunc(societyHandler.Create)).ServeHTTP).Methods("POST")
	societiesAPI.HandleFunc("/{id}", societyHandler.Get).Methods("GET")
	societiesAPI.HandleFunc("/{id}", middleware.RequireRole("admin")(http.HandlerFunc(societyHandler.Update)).ServeHTTP).Methods("PUT")
	societiesAPI.HandleFunc("/{id}", middleware.RequireRole("admin")(http.HandlerFunc(societyHandler.Delete)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Parties
	partiesAPI := r.PathPrefix("/api/parties").Subrouter()
	partiesAPI.Use(authMiddleware.Authenticate)
	partiesAPI.HandleFunc("", partyHandler.List).Methods("GET")
	partiesAPI.HandleFunc("", partyHandler.Create).Methods("POST")
	partiesAPI.HandleFunc("/{id}", partyHandler.Get).Methods("GET")
	partiesAPI.HandleFunc("/{id}", partyHandler.Update).Methods("PUT")
	partiesAPI.HandleFunc("/{id}", middleware.RequireRole("admin")(http.HandlerFunc(partyHandler.Delete)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Gate entries (operators and admins record entries)
	entriesAPI := r.PathPrefix("/api/entries").Subrouter()
	entriesAPI.Use(authMiddleware.Authenticate)
	entriesAPI.HandleFunc("", entryHandler.List).Methods("GET")
	entriesAPI.HandleFunc("", middleware.RequireRole("operator", "admin")(http.HandlerFunc(entryHandler.Create)).ServeHTTP).Methods("POST")
	entriesAPI.HandleFunc("/{id}", entryHandler.Get).Methods("GET")
	entriesAPI.HandleFunc("/{id}", middleware.RequireRole("operator", "admin")(http.HandlerFunc(entryHandler.Update)).ServeHTTP).Methods("PATCH")
	entriesAPI.HandleFunc("/{id}", middleware.RequireRole("admin")(http.HandlerFunc(entryHandler.Delete)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Dashboard
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(authMiddleware.Authenticate)
	dashboardAPI.HandleFunc("/stats", dashboardHandler.Stats).Methods("GET")
	dashboardAPI.HandleFunc("/chart", dashboardHandler.Chart).Methods("GET")
	dashboardAPI.HandleFunc("/trend", dashboardHandler.Trend).Methods("GET")

	// Protected API routes - Reports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/generate", reportHandler.Generate).Methods("POST")

	// Health endpoint (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.Check).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
