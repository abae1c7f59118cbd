package sessions

import (
	"context"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/internal/infra/sessionstore"
)

// SessionStore интерфейс хранилища workflow-сессий
type SessionStore interface {
	Get(ctx context.Context, id string) (*sessionstore.Session, error)
	Save(ctx context.Context, session *sessionstore.Session) error
	Delete(ctx context.Context, id string) error
}

// SalonServiceClient интерфейс клиента для SalonService
type SalonServiceClient interface {
	GetClient(ctx context.Context, clientID string) (*domain.Client, error)
	GetProfessional(ctx context.Context, professionalID string) (*domain.Professional, error)
	ListServices(ctx context.Context, siteID string) ([]domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
