package submit_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SLN-SchedulingService/internal/infra/sessionstore"
	salonClient "github.com/m04kA/SLN-SchedulingService/internal/integrations/salonservice"
	"github.com/m04kA/SLN-SchedulingService/pkg/metrics"
)

// UseCase use case подтверждения бронирования. Авторитетная проверка
// доступности выполняется SalonService: его отказ окончателен, даже если
// консультативная проверка на выборе слота показывала "свободно".
type UseCase struct {
	store       SessionStore
	salonClient SalonServiceClient
	metrics     *metrics.Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(store SessionStore, salonClient SalonServiceClient, m *metrics.Metrics, logger Logger) *UseCase {
	return &UseCase{
		store:       store,
		salonClient: salonClient,
		metrics:     m,
		logger:      logger,
	}
}

// Execute выполняет use case подтверждения бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req == nil || req.SessionID == "" || req.UserID == "" {
		return nil, fmt.Errorf("%w: sessionId and userId are required", ErrInvalidInput)
	}

	uc.logger.Info("SubmitBooking: session=%s, user=%s", req.SessionID, req.UserID)

	// 2. Загружаем сессию и проверяем владельца
	session, err := uc.loadOwned(ctx, req.SessionID, req.UserID)
	if err != nil {
		return nil, err
	}

	// 3. Собираем черновик без смены состояния: машина остается в review
	// до подтверждения сервером
	draft, err := session.Machine.Draft()
	if err != nil {
		uc.logger.Warn("SubmitBooking: session=%s not ready: %v", session.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrNotReadyForSubmit, err)
	}

	// 4. Отправляем черновик SalonService
	booking, err := uc.salonClient.CreateBooking(ctx, draft)
	if err != nil {
		return nil, uc.handleCreateError(ctx, session, err)
	}

	// 5. Успех: завершаем workflow и убираем сессию из хранилища
	if _, err := session.Machine.Submit(); err != nil {
		// Draft уже прошел, Submit из review не может отказать
		uc.logger.Error("SubmitBooking: session=%s unexpected submit error: %v", session.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if err := uc.store.Delete(ctx, session.ID); err != nil {
		// Бронирование уже создано: сессию доудалит TTL
		uc.logger.Warn("SubmitBooking: failed to delete session %s: %v", session.ID, err)
	}

	if uc.metrics != nil {
		uc.metrics.SessionsSubmitted.Inc()
	}
	uc.logger.Info("SubmitBooking: session=%s created booking %s", session.ID, booking.ID)

	return fromBooking(booking, draft.Summary), nil
}

// handleCreateError обрабатывает отказ SalonService на создание бронирования
func (uc *UseCase) handleCreateError(ctx context.Context, session *sessionstore.Session, err error) error {
	var conflictErr *salonClient.ConflictError
	if errors.As(err, &conflictErr) {
		// Конфликт от авторитетной проверки: возвращаем сессию к выбору
		// времени, остальной выбор сохраняется
		uc.logger.Info("SubmitBooking: session=%s rejected by salon service: %s", session.ID, conflictErr.Kind)
		if uc.metrics != nil {
			uc.metrics.ConflictsDetected.WithLabelValues(string(conflictErr.Kind), "authoritative").Inc()
		}

		if backErr := session.Machine.Back(); backErr != nil {
			uc.logger.Error("SubmitBooking: session=%s failed to step back: %v", session.ID, backErr)
		} else if saveErr := uc.store.Save(ctx, session); saveErr != nil {
			uc.logger.Error("SubmitBooking: failed to save session %s: %v", session.ID, saveErr)
		}

		return &BookingConflictError{Conflict: conflictErr}
	}

	switch {
	case errors.Is(err, salonClient.ErrUnavailable):
		// Транзиентный сбой: сессия остается в review, черновик не потерян
		uc.logger.Warn("SubmitBooking: salon service unavailable: %v", err)
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	case errors.Is(err, salonClient.ErrUnauthorized):
		uc.logger.Error("SubmitBooking: upstream authorization failed: %v", err)
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	default:
		uc.logger.Error("SubmitBooking: failed to create booking: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// loadOwned загружает сессию и проверяет владельца
func (uc *UseCase) loadOwned(ctx context.Context, sessionID, userID string) (*sessionstore.Session, error) {
	session, err := uc.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionstore.ErrSessionNotFound) {
			uc.logger.Warn("SubmitBooking: session %s not found", sessionID)
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("SubmitBooking: failed to get session %s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	if session.UserID != userID {
		uc.logger.Warn("SubmitBooking: user %s tried to access session %s owned by %s", userID, sessionID, session.UserID)
		return nil, ErrAccessDenied
	}

	return session, nil
}
