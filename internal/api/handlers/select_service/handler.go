package select_service

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
	msgMissingServiceID       = "ID услуги обязателен"
	msgMissingUserID          = "отсутствует ID пользователя"
	msgSessionNotFound        = "сессия не найдена или истекла"
	msgForbidden              = "доступ запрещен"
	msgServiceNotFound        = "услуга не найдена"
	msgServiceNotEligible     = "мастер не выполняет эту услугу"
	msgSessionFinished        = "сессия уже завершена"
	msgMissingPreviousChoices = "сначала выберите клиента и мастера"
	msgUpstreamDown           = "сервис салона временно недоступен, повторите попытку"
)

// SelectServiceRequest HTTP request model.
// В serviceId допускается как внутренний ID, так и legacy-код услуги.
type SelectServiceRequest struct {
	ServiceID string `json:"serviceId"`
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

// Handle PUT /api/v1/sessions/{sessionId}/service
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /sessions/{id}/service - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SelectServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sessions/{id}/service - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.ServiceID == "" {
		h.logger.Warn("PUT /sessions/{id}/service - Missing service ID: session_id=%s", sessionID)
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	result, err := h.service.SelectService(r.Context(), sessionID, userID, req.ServiceID)
	if err != nil {
		var validationErr *workflow.ValidationError

		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("PUT /sessions/{id}/service - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("PUT /sessions/{id}/service - Access denied: session_id=%s, user_id=%s", sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, sessions.ErrServiceNotFound):
			h.logger.Warn("PUT /sessions/{id}/service - Service not found: service_id=%s", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, sessions.ErrServiceNotEligible):
			h.logger.Warn("PUT /sessions/{id}/service - Service not eligible: session_id=%s, service_id=%s",
				sessionID, req.ServiceID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgServiceNotEligible)

		case errors.Is(err, sessions.ErrSessionFinished):
			h.logger.Warn("PUT /sessions/{id}/service - Session finished: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgSessionFinished)

		case errors.Is(err, sessions.ErrUpstreamUnavailable):
			h.logger.Warn("PUT /sessions/{id}/service - Upstream unavailable: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgUpstreamDown)

		case errors.As(err, &validationErr):
			h.logger.Warn("PUT /sessions/{id}/service - Missing selections: session_id=%s, fields=%v",
				sessionID, validationErr.MissingFields)
			handlers.RespondBadRequest(w, msgMissingPreviousChoices)

		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("PUT /sessions/{id}/service - Invalid input: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /sessions/{id}/service - Failed to select service: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /sessions/{id}/service - Service selected: session_id=%s, service_id=%s", sessionID, req.ServiceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
