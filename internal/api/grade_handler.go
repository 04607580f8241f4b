package api

import (
	"log/slog"
	"net/http"

	"github.com/tkondo/kioku-api/internal/api/shared"
	"github.com/tkondo/kioku-api/internal/grading"
)

// GradeRequest represents the request body for grading a typed answer.
// Answer deliberately has no required tag: an empty answer is a valid
// submission that grades as incorrect.
type GradeRequest struct {
	Answer   string `json:"answer"`
	Expected string `json:"expected" validate:"required,min=1"`
}

// GradeResponse represents the grading result for a submitted answer
type GradeResponse struct {
	Verdict            string  `json:"verdict"`
	Similarity         float64 `json:"similarity"`
	NormalizedAnswer   string  `json:"normalized_answer"`
	NormalizedExpected string  `json:"normalized_expected"`
}

// GradeHandler handles answer grading HTTP requests
type GradeHandler struct {
	logger *slog.Logger
}

// NewGradeHandler creates a new GradeHandler
func NewGradeHandler(logger *slog.Logger) *GradeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GradeHandler{logger: logger}
}

// Grade handles POST /api/grade requests
func (h *GradeHandler) Grade(w http.ResponseWriter, r *http.Request) {
	var req GradeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result := grading.Evaluate(req.Answer, req.Expected)

	response := GradeResponse{
		Verdict:            string(result.Verdict),
		Similarity:         result.Similarity,
		NormalizedAnswer:   result.NormalizedAnswer,
		NormalizedExpected: result.NormalizedExpected,
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}
