package start_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SLN-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SLN-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SLN-SchedulingService/internal/service/sessions"
	"github.com/m04kA/SLN-SchedulingService/internal/service/sessions/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingSiteID      = "ID площадки обязателен"
	msgMissingUserID      = "отсутствует ID пользователя"
)

// StartSessionRequest HTTP request model
type StartSessionRequest struct {
	SiteID string `json:"siteId"`
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

// Handle POST /api/v1/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /sessions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req StartSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.SiteID == "" {
		h.logger.Warn("POST /sessions - Missing site ID: user_id=%s", userID)
		handlers.RespondBadRequest(w, msgMissingSiteID)
		return
	}

	result, err := h.service.Start(r.Context(), models.StartSessionRequest{
		UserID: userID,
		SiteID: req.SiteID,
	})
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("POST /sessions - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /sessions - Failed to start session: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions - Session started: session_id=%s, user_id=%s", result.SessionID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
