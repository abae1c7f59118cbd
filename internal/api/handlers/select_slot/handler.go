package select_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SLN-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SLN-SchedulingService/internal/api/middleware"
	selectSlot "github.com/m04kA/SLN-SchedulingService/internal/usecase/select_slot"
	"github.com/m04kA/SLN-SchedulingService/internal/workflow"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidDate            = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID          = "отсутствует ID пользователя"
	msgSessionNotFound        = "сессия не найдена или истекла"
	msgForbidden              = "доступ запрещен"
	msgSlotTaken              = "выбранное время занято"
	msgSessionFinished        = "сессия уже завершена"
	msgMissingPreviousChoices = "сначала выберите клиента, мастера и услугу"
	msgUpstreamDown           = "сервис салона временно недоступен, повторите попытку"
)

type Handler struct {
	useCase SelectSlotUseCase
	logger  Logger
}

func NewHandler(useCase SelectSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/sessions/{sessionId}/slot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /sessions/{id}/slot - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SelectSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sessions/{id}/slot - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(sessionID, userID)
	if err != nil {
		h.logger.Warn("PUT /sessions/{id}/slot - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var (
			conflictErr   *selectSlot.SlotConflictError
			validationErr *workflow.ValidationError
		)

		switch {
		case errors.As(err, &conflictErr):
			// Консультативная проверка: слот занят, даем причину
			h.logger.Info("PUT /sessions/{id}/slot - Slot conflict: session_id=%s, kind=%s",
				sessionID, conflictErr.Conflict.Kind)
			handlers.RespondJSON(w, http.StatusConflict, FromConflict(msgSlotTaken, conflictErr.Conflict))

		case errors.Is(err, selectSlot.ErrSessionNotFound):
			h.logger.Warn("PUT /sessions/{id}/slot - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, selectSlot.ErrAccessDenied):
			h.logger.Warn("PUT /sessions/{id}/slot - Access denied: session_id=%s, user_id=%s", sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, selectSlot.ErrSessionFinished):
			h.logger.Warn("PUT /sessions/{id}/slot - Session finished: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgSessionFinished)

		case errors.Is(err, selectSlot.ErrUpstreamUnavailable):
			h.logger.Warn("PUT /sessions/{id}/slot - Upstream unavailable: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgUpstreamDown)

		case errors.As(err, &validationErr):
			h.logger.Warn("PUT /sessions/{id}/slot - Missing selections: session_id=%s, fields=%v",
				sessionID, validationErr.MissingFields)
			handlers.RespondBadRequest(w, msgMissingPreviousChoices)

		case errors.Is(err, selectSlot.ErrInvalidInput):
			h.logger.Warn("PUT /sessions/{id}/slot - Invalid input: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /sessions/{id}/slot - Failed to select slot: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("PUT /sessions/{id}/slot - Slot selected: session_id=%s, date=%s, start=%s",
		sessionID, response.Date, response.StartTime)
	handlers.RespondJSON(w, http.StatusOK, response)
}
