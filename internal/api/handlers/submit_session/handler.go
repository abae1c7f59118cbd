package submit_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SLN-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SLN-SchedulingService/internal/api/middleware"
	submitBooking "github.com/m04kA/SLN-SchedulingService/internal/usecase/submit_booking"
	"github.com/m04kA/SLN-SchedulingService/internal/workflow"
)

const (
	msgMissingUserID     = "отсутствует ID пользователя"
	msgSessionNotFound   = "сессия не найдена или истекла"
	msgForbidden         = "доступ запрещен"
	msgNotReady          = "сессия не готова к подтверждению"
	msgSlotTaken         = "выбранное время занято, выберите другое"
	msgUpstreamDown      = "сервис салона временно недоступен, повторите попытку"
	msgUpstreamForbidden = "ошибка авторизации в сервисе салона"
)

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/submit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /sessions/{id}/submit - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &submitBooking.Request{
		SessionID: sessionID,
		UserID:    userID,
	})
	if err != nil {
		var conflictErr *submitBooking.BookingConflictError

		switch {
		case errors.As(err, &conflictErr):
			// Авторитетный отказ SalonService: сессия вернулась к выбору времени
			h.logger.Info("POST /sessions/{id}/submit - Booking rejected: session_id=%s, kind=%s",
				sessionID, conflictErr.Conflict.Kind)
			handlers.RespondJSON(w, http.StatusConflict,
				FromConflict(msgSlotTaken, string(workflow.StateSelectingDateTime), conflictErr.Conflict))

		case errors.Is(err, submitBooking.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/submit - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, submitBooking.ErrAccessDenied):
			h.logger.Warn("POST /sessions/{id}/submit - Access denied: session_id=%s, user_id=%s", sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, submitBooking.ErrNotReadyForSubmit):
			h.logger.Warn("POST /sessions/{id}/submit - Not ready: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgNotReady)

		case errors.Is(err, submitBooking.ErrUpstreamUnavailable):
			h.logger.Warn("POST /sessions/{id}/submit - Upstream unavailable: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgUpstreamDown)

		case errors.Is(err, submitBooking.ErrUnauthorized):
			h.logger.Error("POST /sessions/{id}/submit - Upstream authorization failed: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusBadGateway, msgUpstreamForbidden)

		default:
			h.logger.Error("POST /sessions/{id}/submit - Failed to submit: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/submit - Booking created: session_id=%s, booking_id=%s",
		sessionID, result.BookingID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
