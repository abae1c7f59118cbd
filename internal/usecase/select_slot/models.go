package select_slot

import (
	"time"

	"github.com/m04kA/SLN-SchedulingService/internal/infra/sessionstore"
	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

// Request модель запроса на выбор слота
type Request struct {
	SessionID string           // ID workflow-сессии
	UserID    string           // ID пользователя-владельца сессии
	Date      time.Time        // Дата бронирования
	StartTime types.TimeString // Время начала (например, "10:00")
	Notes     *string          // Заметки к бронированию (опционально)
}

// Response модель ответа: сессия переведена в review
type Response struct {
	SessionID string           // ID сессии
	State     string           // Текущее состояние workflow
	Date      time.Time        // Выбранная дата
	StartTime types.TimeString // Время начала
	EndTime   types.TimeString // Время окончания, выведенное из длительности услуги
	Summary   string           // Человекочитаемая сводка выбора
	Notes     *string          // Заметки
}

func fromSession(session *sessionstore.Session) *Response {
	m := session.Machine
	return &Response{
		SessionID: session.ID,
		State:     string(m.State),
		Date:      m.Date,
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
		Summary:   m.Summary,
		Notes:     m.Notes,
	}
}
