package submit_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SLN-SchedulingService/internal/integrations/salonservice"
)

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("session not found or expired")

	// ErrAccessDenied возвращается, когда сессия принадлежит другому пользователю
	ErrAccessDenied = errors.New("access denied")

	// ErrNotReadyForSubmit возвращается, когда сессия не дошла до review
	ErrNotReadyForSubmit = errors.New("session is not ready for submit")

	// ErrUnauthorized возвращается при невалидном токене у SalonService
	ErrUnauthorized = errors.New("upstream authorization failed")

	// ErrUpstreamUnavailable возвращается при транзиентной недоступности SalonService.
	// Сессия остается в review: отправку можно повторить без потери выбора.
	ErrUpstreamUnavailable = errors.New("salon service unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

// BookingConflictError возвращается, когда SalonService отклонил создание
// бронирования из-за конфликта. Решение сервера окончательно: повторять
// отправку с тем же слотом бессмысленно, сессия возвращается к выбору
// времени.
type BookingConflictError struct {
	Conflict *salonservice.ConflictError
}

func (e *BookingConflictError) Error() string {
	return fmt.Sprintf("booking rejected by salon service: %s", e.Conflict.Message)
}
