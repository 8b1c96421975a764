package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/missingred/portfolio/internal/app/conversation"
	"github.com/missingred/portfolio/internal/domain"
	"github.com/missingred/portfolio/internal/observability"
)

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type messageResponse struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type sessionResponse struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"createdAt"`
	Messages  []messageResponse `json:"messages"`
}

type listChatsResponse struct {
	Chats []sessionResponse `json:"chats"`
}

type createChatRequest struct {
	ID string `json:"id,omitempty"`
}

type appendMessageRequest struct {
	Role string `json:"role,omitempty"`
	Text string `json:"text"`
}

type streamEvent struct {
	Chats      []sessionResponse `json:"chats"`
	SelectedID string            `json:"selectedId,omitempty"`
	Selected   *sessionResponse  `json:"selected,omitempty"`
}

func toSessionResponse(s domain.Session) sessionResponse {
	msgs := make([]messageResponse, 0, len(s.Messages))
	for _, m := range s.Messages {
		msgs = append(msgs, messageResponse{Role: string(m.Role), Text: m.Text})
	}
	return sessionResponse{ID: string(s.ID), CreatedAt: s.CreatedAt, Messages: msgs}
}

func toSessionsResponse(sessions []domain.Session) []sessionResponse {
	out := make([]sessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionResponse(s))
	}
	return out
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleListChats(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.chats.ListSessions(r.Context())
	if err != nil {
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, listChatsResponse{Chats: toSessionsResponse(sessions)})
}

func (s *Server) handleCreateChat(w http.ResponseWriter, r *http.Request) {
	var req createChatRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}
	}

	sess, err := s.chats.CreateSession(r.Context(), domain.SessionID(req.ID))
	if err != nil {
		if errors.Is(err, domain.ErrSessionExists) {
			writeFailure(w, http.StatusConflict, "session already exists")
			return
		}
		internalError(w)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionResponse(*sess))
}

func (s *Server) handleGetChat(w http.ResponseWriter, r *http.Request) {
	id := domain.SessionID(mux.Vars(r)["id"])

	sess, err := s.chats.GetSession(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			writeFailure(w, http.StatusNotFound, "session not found")
			return
		}
		internalError(w)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(*sess))
}

func (s *Server) handleAppendMessage(w http.ResponseWriter, r *http.Request) {
	id := domain.SessionID(mux.Vars(r)["id"])

	var req appendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	var role domain.Role
	if req.Role != "" {
		parsed, err := domain.ParseRole(req.Role)
		if err != nil {
			badRequest(w, "role must be user or assistant")
			return
		}
		role = parsed
	}

	msg, err := s.chats.Append(r.Context(), conversation.AppendInput{SessionID: id, Role: role, Text: req.Text})
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, messageResponse{Role: string(msg.Role), Text: msg.Text})
	case errors.Is(err, conversation.ErrEmptyText):
		badRequest(w, "text is required")
	case errors.Is(err, domain.ErrSessionNotFound):
		writeFailure(w, http.StatusNotFound, "session not found")
	default:
		internalError(w)
	}
}

// handleStreamChats pushes a server-sent event for every store snapshot.
// Each connection keeps its own selection.
func (s *Server) handleStreamChats(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeFailure(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ctx := r.Context()
	log := observability.LoggerFromContext(ctx)

	updates, err := s.chats.Watch(ctx)
	if err != nil {
		log.WithError(err).Error("failed to watch sessions")
		internalError(w)
		return
	}

	sel := conversation.NewSelector()
	if id := r.URL.Query().Get("selected"); id != "" {
		sel.Select(domain.SessionID(id))
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	_ = sel.Run(ctx, updates, func(sel *conversation.Selector) {
		ev := streamEvent{
			Chats:      toSessionsResponse(sel.Visible()),
			SelectedID: string(sel.SelectedID()),
		}
		if cur, ok := sel.Selected(); ok {
			resp := toSessionResponse(cur)
			ev.Selected = &resp
		}

		data, err := json.Marshal(ev)
		if err != nil {
			log.WithError(err).Error("failed to encode snapshot event")
			return
		}
		fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data)
		flusher.Flush()
	})
}
