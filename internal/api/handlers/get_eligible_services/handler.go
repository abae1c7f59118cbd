package get_eligible_services

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SLN-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SLN-SchedulingService/internal/service/sessions"
	"github.com/m04kA/SLN-SchedulingService/internal/service/sessions/models"
)

const (
	msgMissingSiteID        = "ID площадки обязателен"
	msgProfessionalNotFound = "мастер не найден"
	msgUpstreamDown         = "сервис салона временно недоступен, повторите попытку"
)

// ServicesResponse HTTP response model списка услуг мастера
type ServicesResponse struct {
	ProfessionalID string              `json:"professionalId"`
	Services       []models.ServiceDTO `json:"services"`
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

// Handle GET /api/v1/professionals/{professionalId}/services
// Query params: siteId (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	professionalID := vars["professionalId"]

	siteID := r.URL.Query().Get("siteId")
	if siteID == "" {
		h.logger.Warn("GET /professionals/{id}/services - Missing site ID: professional_id=%s", professionalID)
		handlers.RespondBadRequest(w, msgMissingSiteID)
		return
	}

	services, err := h.service.EligibleServices(r.Context(), professionalID, siteID)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrProfessionalNotFound):
			h.logger.Warn("GET /professionals/{id}/services - Professional not found: professional_id=%s", professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, sessions.ErrUpstreamUnavailable):
			h.logger.Warn("GET /professionals/{id}/services - Upstream unavailable: professional_id=%s", professionalID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgUpstreamDown)

		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("GET /professionals/{id}/services - Invalid input: professional_id=%s, error=%v",
				professionalID, err)
			handlers.RespondBadRequest(w, msgMissingSiteID)

		default:
			h.logger.Error("GET /professionals/{id}/services - Failed to list services: professional_id=%s, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &ServicesResponse{
		ProfessionalID: professionalID,
		Services:       services,
	})
}
