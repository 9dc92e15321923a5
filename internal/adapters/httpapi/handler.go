package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"factskill/internal/domain"
	"factskill/internal/ports/input"
)

const maxEnvelopeBytes = 1 << 20

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SkillHandler serves the skill endpoint.
type SkillHandler struct {
	skill  input.SkillUseCase
	logger *slog.Logger
}

func NewSkillHandler(skill input.SkillUseCase, logger *slog.Logger) *SkillHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SkillHandler{skill: skill, logger: logger}
}

// Invoke decodes a request envelope and answers with the response envelope.
// Handled requests are always 200, including spoken errors. Only a body that
// is not a JSON envelope yields 400.
func (h *SkillHandler) Invoke(w http.ResponseWriter, r *http.Request) {
	var req domain.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEnvelopeBytes))
	if err := dec.Decode(&req); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		h.logger.Warn("rejected envelope", slog.String("error", err.Error()))
		writeJSON(w, status, errorBody{Error: domain.Code(domain.ErrInvalidRequest), Message: "request body is not a valid envelope"})
		return
	}

	writeJSON(w, http.StatusOK, h.skill.Handle(r.Context(), req))
}

// Health reports liveness.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
