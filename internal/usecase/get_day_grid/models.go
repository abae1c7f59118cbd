package get_day_grid

import (
	"time"

	"github.com/m04kA/SLN-SchedulingService/internal/scheduling/availability"
	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

// Request модель запроса дневной сетки профессионала
type Request struct {
	UserID         string    // ID пользователя (для логирования, не влияет на результат)
	ProfessionalID string    // ID профессионала
	Date           time.Time // Дата, на которую запрашивается сетка (без времени)
}

// Response модель ответа с дневной сеткой занятости
type Response struct {
	Date               time.Time        // Дата сетки
	ProfessionalID     string           // ID профессионала
	GridStart          types.TimeString // Время первой строки сетки
	GridEnd            types.TimeString // Время последней строки сетки
	GranularityMinutes int              // Шаг сетки в минутах
	Slots              []Slot           // Строки сетки по порядку
}

// Slot одна строка дневной сетки
type Slot struct {
	StartTime       types.TimeString // Время начала строки (например, "10:00")
	DurationMinutes int              // Длительность строки в минутах
	Free            bool             // Свободна ли строка
	Conflict        *Conflict        // Причина занятости при Free == false
}

// Conflict причина занятости строки сетки
type Conflict struct {
	Kind       string // booking_conflict | blackout_conflict
	BookingID  string // заполнено для booking_conflict
	BlackoutID string // заполнено для blackout_conflict
	Motive     string // причина недоступности для blackout_conflict
}

func fromResolverConflict(c *availability.Conflict) *Conflict {
	if c == nil {
		return nil
	}
	return &Conflict{
		Kind:       string(c.Kind),
		BookingID:  c.BookingID,
		BlackoutID: c.BlackoutID,
		Motive:     c.Motive,
	}
}
