package get_day_grid

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SLN-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SLN-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	getDayGrid "github.com/m04kA/SLN-SchedulingService/internal/usecase/get_day_grid"
)

const (
	msgMissingDate          = "дата обязательна"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgProfessionalNotFound = "мастер не найден"
	msgUpstreamDown         = "сервис салона временно недоступен, повторите попытку"
)

type Handler struct {
	useCase GetDayGridUseCase
	logger  Logger
}

func NewHandler(useCase GetDayGridUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/day-grid
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	professionalID := vars["professionalId"]

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /professionals/{id}/day-grid - Missing date: professional_id=%s", professionalID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/day-grid - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Роут публичный: ID пользователя опционален, нужен только для логов
	userID, _ := middleware.GetUserID(r.Context())

	result, err := h.useCase.Execute(r.Context(), &getDayGrid.Request{
		UserID:         userID,
		ProfessionalID: professionalID,
		Date:           date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getDayGrid.ErrProfessionalNotFound):
			h.logger.Warn("GET /professionals/{id}/day-grid - Professional not found: professional_id=%s", professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, getDayGrid.ErrUpstreamUnavailable):
			h.logger.Warn("GET /professionals/{id}/day-grid - Upstream unavailable: professional_id=%s", professionalID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgUpstreamDown)

		case errors.Is(err, getDayGrid.ErrInvalidInput), errors.Is(err, getDayGrid.ErrInvalidDate):
			h.logger.Warn("GET /professionals/{id}/day-grid - Invalid input: professional_id=%s, error=%v",
				professionalID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /professionals/{id}/day-grid - Failed to build grid: professional_id=%s, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
