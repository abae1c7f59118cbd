package availability

import (
	"time"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

// ConflictKind тип причины занятости временного диапазона
type ConflictKind string

const (
	KindBooking  ConflictKind = "booking_conflict"
	KindBlackout ConflictKind = "blackout_conflict"
)

// Conflict описывает причину, по которой диапазон недоступен.
// Используется для объяснения пользователю вместо голого false.
// Проверка консультативная: авторитетная проверка выполняется
// SalonService при создании бронирования.
type Conflict struct {
	Kind       ConflictKind
	BookingID  string // заполнено при Kind == KindBooking
	BlackoutID string // заполнено при Kind == KindBlackout
	Motive     string // причина недоступности при Kind == KindBlackout
}

// IsFree проверяет, свободен ли профессионал в диапазоне [start, end)
// на указанную дату с учетом бронирований и экземпляров недоступности
func IsFree(
	professionalID string,
	date time.Time,
	start, end types.TimeString,
	bookings []*domain.Booking,
	blackouts []domain.BlackoutInstance,
) bool {
	return ExplainConflict(professionalID, date, start, end, bookings, blackouts) == nil
}

// ExplainConflict возвращает описание первого найденного конфликта
// или nil, если диапазон свободен.
// Сначала проверяются бронирования, затем окна недоступности.
func ExplainConflict(
	professionalID string,
	date time.Time,
	start, end types.TimeString,
	bookings []*domain.Booking,
	blackouts []domain.BlackoutInstance,
) *Conflict {
	for _, booking := range bookings {
		if booking.ProfessionalID != professionalID {
			continue
		}
		// Отмененные бронирования освобождают свое время
		if !booking.BlocksAvailability() {
			continue
		}
		if !sameDay(booking.Date, date) {
			continue
		}

		if Overlaps(start, end, booking.StartTime, booking.EndTime) {
			return &Conflict{Kind: KindBooking, BookingID: booking.ID}
		}
	}

	rangeStart := atClock(date, start)
	rangeEnd := atClock(date, end)

	for _, inst := range blackouts {
		if inst.ProfessionalID != professionalID {
			continue
		}

		// Экземпляры сравниваются в абсолютном времени:
		// окно недоступности может накрывать несколько дней
		if inst.Start.Before(rangeEnd) && inst.End.After(rangeStart) {
			return &Conflict{Kind: KindBlackout, BlackoutID: inst.BlackoutID, Motive: inst.Motive}
		}
	}

	return nil
}

// Overlaps проверяет пересечение двух полуинтервалов [aStart, aEnd) и [bStart, bEnd).
// Интервалы пересекаются только при строгих неравенствах:
// граничащие интервалы (конец одного равен началу другого) не пересекаются.
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && aEnd.IsAfter(bStart)
}

// atClock совмещает дату и время "HH:MM" в абсолютный момент времени
func atClock(date time.Time, t types.TimeString) time.Time {
	minutes := t.Minutes()
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, date.Location())
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
