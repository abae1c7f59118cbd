package cancel_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SLN-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SLN-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SLN-SchedulingService/internal/service/sessions"
)

const (
	msgMissingUserID   = "отсутствует ID пользователя"
	msgSessionNotFound = "сессия не найдена или истекла"
	msgForbidden       = "доступ запрещен"
	msgSessionFinished = "сессия уже завершена"
)

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

// Handle DELETE /api/v1/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /sessions/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err := h.service.Cancel(r.Context(), sessionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("DELETE /sessions/{id} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("DELETE /sessions/{id} - Access denied: session_id=%s, user_id=%s", sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, sessions.ErrSessionFinished):
			h.logger.Warn("DELETE /sessions/{id} - Session finished: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgSessionFinished)

		default:
			h.logger.Error("DELETE /sessions/{id} - Failed to cancel session: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /sessions/{id} - Session cancelled: session_id=%s, user_id=%s", sessionID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
