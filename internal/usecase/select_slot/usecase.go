package select_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/internal/infra/sessionstore"
	salonClient "github.com/m04kA/SLN-SchedulingService/internal/integrations/salonservice"
	"github.com/m04kA/SLN-SchedulingService/internal/scheduling/availability"
	"github.com/m04kA/SLN-SchedulingService/internal/scheduling/recurrence"
	"github.com/m04kA/SLN-SchedulingService/internal/scheduling/timegrid"
	"github.com/m04kA/SLN-SchedulingService/internal/workflow"
	"github.com/m04kA/SLN-SchedulingService/pkg/metrics"
	"github.com/m04kA/SLN-SchedulingService/pkg/ptr"
)

// UseCase use case выбора слота с консультативной проверкой доступности.
// Проверка ускоряет обратную связь, но не резервирует время:
// авторитетное решение принимает SalonService при создании бронирования.
type UseCase struct {
	store       SessionStore
	salonClient SalonServiceClient
	grid        timegrid.Grid
	metrics     *metrics.Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(store SessionStore, salonClient SalonServiceClient, grid timegrid.Grid, m *metrics.Metrics, logger Logger) *UseCase {
	return &UseCase{
		store:       store,
		salonClient: salonClient,
		grid:        grid,
		metrics:     m,
		logger:      logger,
	}
}

// Execute выполняет use case выбора слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SelectSlot: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("SelectSlot: session=%s, user=%s, date=%s, start=%s",
		req.SessionID, req.UserID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 2. Загружаем сессию и проверяем владельца
	session, err := uc.loadOwned(ctx, req.SessionID, req.UserID)
	if err != nil {
		return nil, err
	}

	// 3. Фиксируем кандидата слота: машина выведет время окончания
	// из длительности выбранной услуги
	if err := session.Machine.SelectSlot(req.Date, req.StartTime); err != nil {
		return nil, uc.mapWorkflowError("SelectSlot", err)
	}

	// 4. Слот обязан лежать внутри рабочих границ сетки:
	// начало в полуинтервале [Start, End), окончание не позже End
	if _, err := uc.grid.RowIndexOf(session.Machine.StartTime); err != nil {
		uc.logger.Warn("SelectSlot: session=%s start %s outside grid [%s, %s)",
			session.ID, session.Machine.StartTime, uc.grid.Start, uc.grid.End)
		return nil, fmt.Errorf("%w: start time %s outside operating window %s-%s",
			ErrInvalidInput, session.Machine.StartTime, uc.grid.Start, uc.grid.End)
	}
	if session.Machine.EndTime.IsAfter(uc.grid.End) {
		uc.logger.Warn("SelectSlot: session=%s end %s outside grid [%s, %s)",
			session.ID, session.Machine.EndTime, uc.grid.Start, uc.grid.End)
		return nil, fmt.Errorf("%w: end time %s outside operating window %s-%s",
			ErrInvalidInput, session.Machine.EndTime, uc.grid.Start, uc.grid.End)
	}

	// 5. Консультативная проверка: снимки бронирований и окон
	// недоступности на выбранную дату
	professionalID := session.Machine.Professional.ID

	filter := domain.BookingsFilter{
		ProfessionalID: ptr.Ptr(professionalID),
		Date:           ptr.Ptr(req.Date),
	}
	bookings, err := uc.salonClient.ListBookings(ctx, filter)
	if err != nil {
		return nil, uc.mapUpstreamError("SelectSlot", err)
	}

	windows, err := uc.salonClient.ListBlackouts(ctx, professionalID)
	if err != nil {
		return nil, uc.mapUpstreamError("SelectSlot", err)
	}

	dayStart := truncateToDay(req.Date)
	instances, err := recurrence.ExpandAllWithin(windows, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		uc.logger.Error("SelectSlot: failed to expand blackouts for professional=%s: %v", professionalID, err)
		return nil, fmt.Errorf("%w: failed to expand blackouts: %v", ErrInternal, err)
	}

	conflict := availability.ExplainConflict(
		professionalID, req.Date,
		session.Machine.StartTime, session.Machine.EndTime,
		bookings, instances,
	)
	if conflict != nil {
		uc.logger.Info("SelectSlot: session=%s slot %s-%s rejected: %s",
			session.ID, session.Machine.StartTime, session.Machine.EndTime, conflict.Kind)
		if uc.metrics != nil {
			uc.metrics.ConflictsDetected.WithLabelValues(string(conflict.Kind), "advisory").Inc()
		}
		return nil, &SlotConflictError{Conflict: conflict}
	}

	// 6. Слот свободен: заметки и переход в review
	if req.Notes != nil {
		if err := session.Machine.SetNotes(req.Notes); err != nil {
			return nil, uc.mapWorkflowError("SelectSlot", err)
		}
	}
	if err := session.Machine.EnterReview(); err != nil {
		return nil, uc.mapWorkflowError("SelectSlot", err)
	}

	if err := uc.store.Save(ctx, session); err != nil {
		uc.logger.Error("SelectSlot: failed to save session %s: %v", session.ID, err)
		return nil, fmt.Errorf("%w: failed to save session: %v", ErrInternal, err)
	}

	uc.logger.Info("SelectSlot: session=%s moved to review, slot %s %s-%s",
		session.ID, req.Date.Format(domain.DateFormat), session.Machine.StartTime, session.Machine.EndTime)

	return fromSession(session), nil
}

// loadOwned загружает сессию и проверяет владельца
func (uc *UseCase) loadOwned(ctx context.Context, sessionID, userID string) (*sessionstore.Session, error) {
	session, err := uc.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionstore.ErrSessionNotFound) {
			uc.logger.Warn("SelectSlot: session %s not found", sessionID)
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("SelectSlot: failed to get session %s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	if session.UserID != userID {
		uc.logger.Warn("SelectSlot: user %s tried to access session %s owned by %s", userID, sessionID, session.UserID)
		return nil, ErrAccessDenied
	}

	return session, nil
}

// mapWorkflowError переводит ошибки машины состояний в ошибки usecase
func (uc *UseCase) mapWorkflowError(op string, err error) error {
	var validationErr *workflow.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr
	}

	switch {
	case errors.Is(err, workflow.ErrTerminalState):
		return fmt.Errorf("%w: %v", ErrSessionFinished, err)
	case errors.Is(err, workflow.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("%s: unexpected workflow error: %v", op, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// mapUpstreamError переводит ошибки SalonService в ошибки usecase
func (uc *UseCase) mapUpstreamError(op string, err error) error {
	if errors.Is(err, salonClient.ErrUnavailable) {
		uc.logger.Warn("%s: salon service unavailable: %v", op, err)
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	uc.logger.Error("%s: failed to call salon service: %v", op, err)
	return fmt.Errorf("%w: %v", ErrInternal, err)
}
