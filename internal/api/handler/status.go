package handler

import (
	"net/http"

	"github.com/gildedernacht/olymp/internal/api/response"
	"github.com/gildedernacht/olymp/internal/dependencies/clock"
)

// StatusHandler reports that the server is up
type StatusHandler struct {
	version string
	clock   clock.Clock
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(version string, clock clock.Clock) *StatusHandler {
	return &StatusHandler{version: version, clock: clock}
}

// Get handles GET /status
func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Status{
		Version: h.version,
		Time:    h.clock.Now(),
	})
}
