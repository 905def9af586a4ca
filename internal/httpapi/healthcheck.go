package httpapi

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/MikiCRO/SpaceX-Project/internal/utils"
)

type healthchecker interface {
	handleHealthz(w http.ResponseWriter, r *http.Request)
}

type healthcheckerImpl struct {
	db *sql.DB
}

func NewHealthchecker(db *sql.DB) healthchecker {
	return &healthcheckerImpl{db: db}
}

type healthStatus struct {
	Status   string `json:"status"`
	Launches int    `json:"launches"`
}

// handleHealthz reports ok once the database answers and the launch dataset
// has been seeded.
func (h *healthcheckerImpl) handleHealthz(w http.ResponseWriter, r *http.Request) {
	var n int
	if err := h.db.QueryRowContext(r.Context(), `SELECT COUNT(*) FROM launches`).Scan(&n); err != nil {
		slog.Error("failed to check database connectivity", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to check database connectivity")
		return
	}
	if n == 0 {
		utils.WriteError(w, http.StatusServiceUnavailable, "launch dataset not loaded")
		return
	}
	utils.WriteJSON(w, http.StatusOK, healthStatus{Status: "ok", Launches: n})
}

func registerHealthcheck(mux *http.ServeMux, db *sql.DB) {
	healthchecker := NewHealthchecker(db)
	mux.HandleFunc("GET /healthz", healthchecker.handleHealthz)
}
