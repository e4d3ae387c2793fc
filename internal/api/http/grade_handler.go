package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/checkdaily/checkdaily/internal/grading"
)

// POST /grade
func GradeHandler(engine *grading.Engine, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req grading.GradeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Missing prompt/answer")
			return
		}
		res, err := engine.Grade(r.Context(), req)
		switch {
		case errors.Is(err, grading.ErrMissingPrompt) || errors.Is(err, grading.ErrMissingAnswer):
			writeError(w, http.StatusBadRequest, "Missing prompt/answer")
			return
		case err != nil:
			log.Error("grading failed", zap.String("scenario", req.ScenarioID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Grading failed. Try again.")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
