package get_day_grid

import (
	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	getDayGrid "github.com/m04kA/SLN-SchedulingService/internal/usecase/get_day_grid"
)

// DayGridResponse HTTP response model дневной сетки
type DayGridResponse struct {
	Date               string `json:"date"`
	ProfessionalID     string `json:"professionalId"`
	GridStart          string `json:"gridStart"`
	GridEnd            string `json:"gridEnd"`
	GranularityMinutes int    `json:"granularityMinutes"`
	Slots              []Slot `json:"slots"`
}

// Slot строка дневной сетки
type Slot struct {
	StartTime       string    `json:"startTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Free            bool      `json:"free"`
	Conflict        *Conflict `json:"conflict,omitempty"`
}

// Conflict причина занятости строки
type Conflict struct {
	Kind       string `json:"kind"`
	BookingID  string `json:"bookingId,omitempty"`
	BlackoutID string `json:"blackoutId,omitempty"`
	Motive     string `json:"motive,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDayGrid.Response) *DayGridResponse {
	slots := make([]Slot, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slot := Slot{
			StartTime:       s.StartTime.String(),
			DurationMinutes: s.DurationMinutes,
			Free:            s.Free,
		}
		if s.Conflict != nil {
			slot.Conflict = &Conflict{
				Kind:       s.Conflict.Kind,
				BookingID:  s.Conflict.BookingID,
				BlackoutID: s.Conflict.BlackoutID,
				Motive:     s.Conflict.Motive,
			}
		}
		slots = append(slots, slot)
	}

	return &DayGridResponse{
		Date:               resp.Date.Format(domain.DateFormat),
		ProfessionalID:     resp.ProfessionalID,
		GridStart:          resp.GridStart.String(),
		GridEnd:            resp.GridEnd.String(),
		GranularityMinutes: resp.GranularityMinutes,
		Slots:              slots,
	}
}
