package select_professional

import (
	"context"

	"github.com/m04kA/SLN-SchedulingService/internal/service/sessions/models"
)

type SessionService interface {
	SelectProfessional(ctx context.Context, sessionID, userID, professionalID string) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
