/*
scenarios.go - Demo scenario endpoint

PURPOSE:
  Resets the database and loads the six-employee demo roster
  (see store/sqlite/demo.go) so a grant run can be tried over HTTP.

USAGE VIA API:
  POST /api/scenarios/demo

NOTE:
  Loading resets the database. Only use in development/demo environments.
*/
package api

import (
	"log"
	"net/http"
)

// LoadDemoScenario handles POST /api/scenarios/demo.
func (h *Handler) LoadDemoScenario(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.LoadDemo(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load demo roster", err)
		return
	}
	log.Println("[Scenario] Loaded demo roster")
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded"})
}
