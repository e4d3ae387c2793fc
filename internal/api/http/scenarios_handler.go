package http

import (
	"net/http"

	"github.com/checkdaily/checkdaily/internal/scenario"
)

// GET /scenarios
// Scoring keyword tables are stripped before serialization; trainees
// only see id, label and prompt.
func ListScenariosHandler(cat *scenario.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cat.List())
	}
}
