package get_eligible_services

import (
	"context"

	"github.com/m04kA/SLN-SchedulingService/internal/service/sessions/models"
)

type SessionService interface {
	EligibleServices(ctx context.Context, professionalID, siteID string) ([]models.ServiceDTO, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
