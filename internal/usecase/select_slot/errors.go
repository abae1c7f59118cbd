package select_slot

import (
	"errors"
	"fmt"

	"github.com/m04kA/SLN-SchedulingService/internal/scheduling/availability"
)

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("session not found or expired")

	// ErrAccessDenied возвращается, когда сессия принадлежит другому пользователю
	ErrAccessDenied = errors.New("access denied")

	// ErrSessionFinished возвращается при операции над завершенной сессией
	ErrSessionFinished = errors.New("session is already finished")

	// ErrUpstreamUnavailable возвращается при транзиентной недоступности SalonService
	ErrUpstreamUnavailable = errors.New("salon service unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

// SlotConflictError возвращается, когда выбранный слот занят по данным
// консультативной проверки. Причина конфликта сохраняется для ответа
// пользователю; сессия остается на шаге выбора времени.
type SlotConflictError struct {
	Conflict *availability.Conflict
}

func (e *SlotConflictError) Error() string {
	switch e.Conflict.Kind {
	case availability.KindBlackout:
		return fmt.Sprintf("slot is unavailable: %s", e.Conflict.Motive)
	default:
		return "slot is already booked"
	}
}
