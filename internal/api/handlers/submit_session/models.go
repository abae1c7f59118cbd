package submit_session

import (
	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/internal/integrations/salonservice"
	submitBooking "github.com/m04kA/SLN-SchedulingService/internal/usecase/submit_booking"
)

// BookingResponse HTTP response model созданного бронирования
type BookingResponse struct {
	BookingID      string `json:"bookingId"`
	ClientID       string `json:"clientId"`
	ProfessionalID string `json:"professionalId"`
	ServiceID      string `json:"serviceId"`
	Date           string `json:"date"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	Status         string `json:"status"`
	Summary        string `json:"summary"`
}

// ConflictResponse HTTP response model для отказа сервера.
// Ответ окончателен: повторная отправка того же слота не поможет.
type ConflictResponse struct {
	Error      string `json:"error"`
	Kind       string `json:"kind"`
	BookingID  string `json:"bookingId,omitempty"`
	BlackoutID string `json:"blackoutId,omitempty"`
	Motive     string `json:"motive,omitempty"`
	State      string `json:"state"` // состояние сессии после отката
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingID:      resp.BookingID,
		ClientID:       resp.ClientID,
		ProfessionalID: resp.ProfessionalID,
		ServiceID:      resp.ServiceID,
		Date:           resp.Date.Format(domain.DateFormat),
		StartTime:      resp.StartTime.String(),
		EndTime:        resp.EndTime.String(),
		Status:         resp.Status,
		Summary:        resp.Summary,
	}
}

// FromConflict конвертирует конфликт сервера в HTTP response
func FromConflict(message, state string, c *salonservice.ConflictError) *ConflictResponse {
	return &ConflictResponse{
		Error:      message,
		Kind:       string(c.Kind),
		BookingID:  c.BookingID,
		BlackoutID: c.BlackoutID,
		Motive:     c.Motive,
		State:      state,
	}
}
