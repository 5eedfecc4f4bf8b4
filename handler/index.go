package handler

import (
	"encoding/json"
	"net/http"
)

// Handler answers the gateway root with a service summary.
func Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	response := map[string]interface{}{
		"service": "Storefront Gateway",
		"status":  "running",
		"path":    r.URL.Path,
		"routes": map[string]string{
			"auth":     "/auth",
			"products": "/products",
			"cart":     "/cart",
			"docs":     "/swagger/index.html",
		},
	}

	json.NewEncoder(w).Encode(response)
}
