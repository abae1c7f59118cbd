package select_professional

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SLN-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SLN-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SLN-SchedulingService/internal/service/sessions"
	"github.com/m04kA/SLN-SchedulingService/internal/workflow"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgMissingProfessionalID  = "ID мастера обязателен"
	msgMissingUserID          = "отсутствует ID пользователя"
	msgSessionNotFound        = "сессия не найдена или истекла"
	msgForbidden              = "доступ запрещен"
	msgProfessionalNotFound   = "мастер не найден"
	msgNoEligibleServices     = "мастер не выполняет ни одной услуги"
	msgSessionFinished        = "сессия уже завершена"
	msgMissingPreviousChoices = "сначала выберите клиента"
	msgUpstreamDown           = "сервис салона временно недоступен, повторите попытку"
)

// SelectProfessionalRequest HTTP request model
type SelectProfessionalRequest struct {
	ProfessionalID string `json:"professionalId"`
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

// Handle PUT /api/v1/sessions/{sessionId}/professional
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /sessions/{id}/professional - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SelectProfessionalRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sessions/{id}/professional - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.ProfessionalID == "" {
		h.logger.Warn("PUT /sessions/{id}/professional - Missing professional ID: session_id=%s", sessionID)
		handlers.RespondBadRequest(w, msgMissingProfessionalID)
		return
	}

	result, err := h.service.SelectProfessional(r.Context(), sessionID, userID, req.ProfessionalID)
	if err != nil {
		var validationErr *workflow.ValidationError

		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("PUT /sessions/{id}/professional - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("PUT /sessions/{id}/professional - Access denied: session_id=%s, user_id=%s", sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, sessions.ErrProfessionalNotFound):
			h.logger.Warn("PUT /sessions/{id}/professional - Professional not found: professional_id=%s", req.ProfessionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, sessions.ErrNoEligibleServices):
			h.logger.Warn("PUT /sessions/{id}/professional - No eligible services: professional_id=%s", req.ProfessionalID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgNoEligibleServices)

		case errors.Is(err, sessions.ErrSessionFinished):
			h.logger.Warn("PUT /sessions/{id}/professional - Session finished: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgSessionFinished)

		case errors.Is(err, sessions.ErrUpstreamUnavailable):
			h.logger.Warn("PUT /sessions/{id}/professional - Upstream unavailable: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgUpstreamDown)

		case errors.As(err, &validationErr):
			h.logger.Warn("PUT /sessions/{id}/professional - Missing selections: session_id=%s, fields=%v",
				sessionID, validationErr.MissingFields)
			handlers.RespondBadRequest(w, msgMissingPreviousChoices)

		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("PUT /sessions/{id}/professional - Invalid input: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /sessions/{id}/professional - Failed to select professional: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /sessions/{id}/professional - Professional selected: session_id=%s, professional_id=%s, services=%d",
		sessionID, req.ProfessionalID, len(result.EligibleServices))
	handlers.RespondJSON(w, http.StatusOK, result)
}
