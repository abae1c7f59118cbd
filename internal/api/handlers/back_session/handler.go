package back_session

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
	msgCannotStepBack  = "возврат с первого шага невозможен"
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

// Handle POST /api/v1/sessions/{sessionId}/back
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /sessions/{id}/back - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Back(r.Context(), sessionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/back - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("POST /sessions/{id}/back - Access denied: session_id=%s, user_id=%s", sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, sessions.ErrSessionFinished):
			h.logger.Warn("POST /sessions/{id}/back - Session finished: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgSessionFinished)

		case errors.Is(err, sessions.ErrInvalidTransition):
			h.logger.Warn("POST /sessions/{id}/back - Cannot step back: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgCannotStepBack)

		default:
			h.logger.Error("POST /sessions/{id}/back - Failed to step back: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/back - Stepped back: session_id=%s, state=%s", sessionID, result.State)
	handlers.RespondJSON(w, http.StatusOK, result)
}
