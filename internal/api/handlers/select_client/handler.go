package select_client

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SLN-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SLN-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SLN-SchedulingService/internal/service/sessions"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingClientID    = "ID клиента обязателен"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSessionNotFound    = "сессия не найдена или истекла"
	msgForbidden          = "доступ запрещен"
	msgClientNotFound     = "клиент не найден"
	msgSessionFinished    = "сессия уже завершена"
	msgUpstreamDown       = "сервис салона временно недоступен, повторите попытку"
)

// SelectClientRequest HTTP request model
type SelectClientRequest struct {
	ClientID string `json:"clientId"`
}

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/sessions/{sessionId}/client
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /sessions/{id}/client - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SelectClientRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sessions/{id}/client - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.ClientID == "" {
		h.logger.Warn("PUT /sessions/{id}/client - Missing client ID: session_id=%s", sessionID)
		handlers.RespondBadRequest(w, msgMissingClientID)
		return
	}

	result, err := h.service.SelectClient(r.Context(), sessionID, userID, req.ClientID)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("PUT /sessions/{id}/client - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("PUT /sessions/{id}/client - Access denied: session_id=%s, user_id=%s", sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, sessions.ErrClientNotFound):
			h.logger.Warn("PUT /sessions/{id}/client - Client not found: client_id=%s", req.ClientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, sessions.ErrSessionFinished):
			h.logger.Warn("PUT /sessions/{id}/client - Session finished: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgSessionFinished)

		case errors.Is(err, sessions.ErrUpstreamUnavailable):
			h.logger.Warn("PUT /sessions/{id}/client - Upstream unavailable: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgUpstreamDown)

		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("PUT /sessions/{id}/client - Invalid input: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /sessions/{id}/client - Failed to select client: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /sessions/{id}/client - Client selected: session_id=%s, client_id=%s", sessionID, req.ClientID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
