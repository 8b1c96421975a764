package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/missingred/portfolio/internal/app/assistant"
	"github.com/missingred/portfolio/internal/app/conversation"
	"github.com/missingred/portfolio/internal/app/notify"
)

type Server struct {
	assistant  *assistant.Service
	notify     *notify.Service
	chats      *conversation.Service
	adminToken string
}

type Options struct {
	// AdminToken protects the /api/chats routes. Empty leaves them open.
	AdminToken string
}

func NewServer(
	assistantSvc *assistant.Service,
	notifySvc *notify.Service,
	chatSvc *conversation.Service,
	opts Options,
) http.Handler {
	s := &Server{
		assistant:  assistantSvc,
		notify:     notifySvc,
		chats:      chatSvc,
		adminToken: opts.AdminToken,
	}

	r := mux.NewRouter()
	r.Use(withRecovery, withRequestID, withLogging)

	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/gemini", s.handleAssistant).Methods(http.MethodPost)
	api.HandleFunc("/send-message", s.handleSendMessage).Methods(http.MethodPost)
	api.HandleFunc("/send-cv", s.handleSendCV).Methods(http.MethodPost)

	chats := api.PathPrefix("/chats").Subrouter()
	chats.Use(s.requireAdmin)
	chats.HandleFunc("", s.handleListChats).Methods(http.MethodGet)
	chats.HandleFunc("", s.handleCreateChat).Methods(http.MethodPost)
	chats.HandleFunc("/stream", s.handleStreamChats).Methods(http.MethodGet)
	chats.HandleFunc("/{id}", s.handleGetChat).Methods(http.MethodGet)
	chats.HandleFunc("/{id}/messages", s.handleAppendMessage).Methods(http.MethodPost)

	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methodNotAllowed(w)
	})

	return withCORS(r)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

// envelope is the {success, error} body returned by every non-passthrough endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeFailure(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Error: msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeFailure(w, http.StatusBadRequest, msg)
}

func internalError(w http.ResponseWriter) {
	writeFailure(w, http.StatusInternalServerError, "internal server error")
}

func methodNotAllowed(w http.ResponseWriter) {
	writeFailure(w, http.StatusMethodNotAllowed, "method not allowed")
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
