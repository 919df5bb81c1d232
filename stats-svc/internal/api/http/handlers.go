package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"ninedelivery/stats-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Stats service.StatsServiceInterface
}

func NewHandler(svc service.StatsServiceInterface) *Handler {
	return &Handler{Stats: svc}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}/popular", h.getPopular).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "healthy",
		"service":   "stats-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getPopular(w http.ResponseWriter, r *http.Request) {
	restaurantID := mux.Vars(r)["restaurantId"]
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	data, err := h.Stats.Popular(r.Context(), restaurantID, r.URL.Query().Get("period"), limit)
	if err != nil {
		http.Error(w, "Stats unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}
