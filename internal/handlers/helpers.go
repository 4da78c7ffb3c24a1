package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"paddy-backend/internal/middleware"
	"paddy-backend/internal/models"
)

// tenant resolves the tenant context or writes a 401.
func tenant(w http.ResponseWriter, r *http.Request) (models.TenantContext, bool) {
	tc, ok := middleware.TenantFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}
	return tc, ok
}

// pathID parses the {id} path variable.
func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

// queryInt parses an optional integer query parameter, 0 when absent.
func queryInt(r *http.Request, key string) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
