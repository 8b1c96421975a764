package httpadapter

import (
	"errors"
	"net/http"

	"github.com/missingred/portfolio/internal/app/assistant"
)

type assistantRequest struct {
	Prompt string `json:"prompt"`
}

// handleAssistant writes the completion provider's body back verbatim.
func (s *Server) handleAssistant(w http.ResponseWriter, r *http.Request) {
	var req assistantRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "JSON inválido")
		return
	}

	raw, err := s.assistant.Relay(r.Context(), req.Prompt)
	if err != nil {
		if errors.Is(err, assistant.ErrEmptyPrompt) {
			badRequest(w, "Prompt requerido")
			return
		}
		writeFailure(w, http.StatusBadGateway, err.Error())
		return
	}

	writeRaw(w, http.StatusOK, raw)
}
