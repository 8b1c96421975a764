package httpadapter

import (
	"errors"
	"net/http"

	"github.com/missingred/portfolio/internal/app/notify"
)

type sendMessageRequest struct {
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
}

type sendCVRequest struct {
	Email string `json:"email"`
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "JSON inválido")
		return
	}

	err := s.notify.SendContact(r.Context(), notify.ContactInput{
		Message: req.Message,
		Email:   req.Email,
		Name:    req.Name,
	})
	if err != nil {
		if errors.Is(err, notify.ErrMessageRequired) {
			badRequest(w, err.Error())
			return
		}
		writeFailure(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true})
}

func (s *Server) handleSendCV(w http.ResponseWriter, r *http.Request) {
	var req sendCVRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "JSON inválido")
		return
	}

	err := s.notify.SendCV(r.Context(), req.Email)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, envelope{Success: true})
	case errors.Is(err, notify.ErrEmailRequired):
		badRequest(w, notify.ErrEmailRequired.Error())
	case errors.Is(err, notify.ErrCVNotFound):
		writeFailure(w, http.StatusInternalServerError, notify.ErrCVNotFound.Error())
	default:
		writeFailure(w, http.StatusBadGateway, err.Error())
	}
}
