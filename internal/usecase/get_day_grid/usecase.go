package get_day_grid

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	salonClient "github.com/m04kA/SLN-SchedulingService/internal/integrations/salonservice"
	"github.com/m04kA/SLN-SchedulingService/internal/scheduling/availability"
	"github.com/m04kA/SLN-SchedulingService/internal/scheduling/recurrence"
	"github.com/m04kA/SLN-SchedulingService/internal/scheduling/timegrid"
	"github.com/m04kA/SLN-SchedulingService/pkg/ptr"
)

// UseCase use case для получения дневной сетки занятости профессионала
type UseCase struct {
	salonClient SalonServiceClient
	grid        timegrid.Grid
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(salonClient SalonServiceClient, grid timegrid.Grid, logger Logger) *UseCase {
	return &UseCase{
		salonClient: salonClient,
		grid:        grid,
		logger:      logger,
	}
}

// Execute выполняет use case построения дневной сетки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDayGrid: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetDayGrid: user=%s, professional=%s, date=%s",
		req.UserID, req.ProfessionalID, req.Date.Format(domain.DateFormat))

	// 2. Проверяем существование профессионала
	professional, err := uc.salonClient.GetProfessional(ctx, req.ProfessionalID)
	if err != nil {
		return nil, uc.mapUpstreamError("GetDayGrid", req.ProfessionalID, err)
	}

	// 3. Получаем бронирования профессионала на дату
	filter := domain.BookingsFilter{
		ProfessionalID: ptr.Ptr(professional.ID),
		Date:           ptr.Ptr(req.Date),
	}
	bookings, err := uc.salonClient.ListBookings(ctx, filter)
	if err != nil {
		return nil, uc.mapUpstreamError("GetDayGrid", req.ProfessionalID, err)
	}

	// 4. Получаем окна недоступности и разворачиваем повторения
	// в пределах суток
	windows, err := uc.salonClient.ListBlackouts(ctx, professional.ID)
	if err != nil {
		return nil, uc.mapUpstreamError("GetDayGrid", req.ProfessionalID, err)
	}

	dayStart := truncateToDay(req.Date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	instances, err := recurrence.ExpandAllWithin(windows, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetDayGrid: failed to expand blackouts for professional=%s: %v", professional.ID, err)
		return nil, fmt.Errorf("%w: failed to expand blackouts: %v", ErrInternal, err)
	}

	// 5. Размечаем каждую строку сетки
	labels := uc.grid.SlotsForDay()
	slots := make([]Slot, 0, len(labels))

	for _, label := range labels {
		end, err := label.AddMinutes(uc.grid.GranularityMinutes)
		if err != nil {
			// Строка упирается в конец суток - сетка закончилась
			break
		}

		conflict := availability.ExplainConflict(professional.ID, req.Date, label, end, bookings, instances)
		slots = append(slots, Slot{
			StartTime:       label,
			DurationMinutes: uc.grid.GranularityMinutes,
			Free:            conflict == nil,
			Conflict:        fromResolverConflict(conflict),
		})
	}

	uc.logger.Info("GetDayGrid: built %d slots for professional=%s, date=%s",
		len(slots), professional.ID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:               req.Date,
		ProfessionalID:     professional.ID,
		GridStart:          uc.grid.Start,
		GridEnd:            uc.grid.End,
		GranularityMinutes: uc.grid.GranularityMinutes,
		Slots:              slots,
	}, nil
}

// mapUpstreamError переводит ошибки SalonService в ошибки usecase
func (uc *UseCase) mapUpstreamError(op, professionalID string, err error) error {
	switch {
	case errors.Is(err, salonClient.ErrProfessionalNotFound):
		uc.logger.Warn("%s: professional id=%s not found", op, professionalID)
		return ErrProfessionalNotFound
	case errors.Is(err, salonClient.ErrUnavailable):
		uc.logger.Warn("%s: salon service unavailable: %v", op, err)
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	default:
		uc.logger.Error("%s: failed to call salon service for professional=%s: %v", op, professionalID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// truncateToDay отбрасывает время, оставляя полночь в той же локации
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
