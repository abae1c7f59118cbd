package salonservice

import (
	"errors"
	"fmt"
)

var (
	// ErrClientNotFound возвращается, когда клиент не существует на стороне SalonService
	ErrClientNotFound = errors.New("salonservice client: salon client not found")

	// ErrProfessionalNotFound возвращается, когда профессионал не найден
	ErrProfessionalNotFound = errors.New("salonservice client: professional not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("salonservice client: service not found")

	// ErrUnauthorized возвращается при невалидном или истекшем токене сессии.
	// Пробрасывается наружу для принудительной повторной аутентификации.
	ErrUnauthorized = errors.New("salonservice client: unauthorized")

	// ErrUnavailable возвращается при транзиентных сетевых ошибках.
	// Запрос можно повторить; черновик бронирования при этом не теряется.
	ErrUnavailable = errors.New("salonservice client: service unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("salonservice client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("salonservice client: internal error")
)

// ConflictKind вид конфликта, о котором сообщил SalonService
type ConflictKind string

const (
	ConflictBooking  ConflictKind = "booking_conflict"
	ConflictBlackout ConflictKind = "blackout_conflict"
)

// ConflictError структурированный конфликт от авторитетной проверки
// SalonService при создании бронирования. Ответ сервера окончателен:
// он перекрывает устаревший "свободно" клиентского резолвера.
type ConflictError struct {
	Kind       ConflictKind
	BookingID  string
	BlackoutID string
	Motive     string
	Message    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("salonservice client: booking rejected (%s): %s", e.Kind, e.Message)
}
