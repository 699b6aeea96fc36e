package handlers

import (
	"net/http"

	"github.com/mrdavis-dev/carwash-cloud-api/internal/httputil"
)

// Root handles GET / with a short service banner.
func Root(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Car Wash API up and running"})
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
