package get_day_grid

import (
	"context"
	"time"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
)

// SalonServiceClient интерфейс клиента для SalonService
type SalonServiceClient interface {
	GetProfessional(ctx context.Context, professionalID string) (*domain.Professional, error)
	ListBookings(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	ListBlackouts(ctx context.Context, professionalID string) ([]domain.BlackoutWindow, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
