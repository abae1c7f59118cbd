package submit_booking

import (
	"time"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

// Request модель запроса на подтверждение бронирования
type Request struct {
	SessionID string // ID workflow-сессии
	UserID    string // ID пользователя-владельца сессии
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID      string           // ID бронирования на стороне SalonService
	ClientID       string           // ID клиента
	ProfessionalID string           // ID профессионала
	ServiceID      string           // ID услуги
	Date           time.Time        // Дата бронирования
	StartTime      types.TimeString // Время начала
	EndTime        types.TimeString // Время окончания
	Status         string           // Статус созданного бронирования
	Summary        string           // Сводка из сессии
}

func fromBooking(booking *domain.Booking, summary string) *Response {
	return &Response{
		BookingID:      booking.ID,
		ClientID:       booking.ClientID,
		ProfessionalID: booking.ProfessionalID,
		ServiceID:      booking.ServiceID,
		Date:           booking.Date,
		StartTime:      booking.StartTime,
		EndTime:        booking.EndTime,
		Status:         string(booking.Status),
		Summary:        summary,
	}
}
