package salonservice

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

// Сырые wire-модели SalonService.
//
// API исторически отдаeт одно и то же логическое поле под разными именами
// в зависимости от эндпоинта (startTime/start, durationMinutes/duration,
// legacyReferenceCode/legacyCode). Нормализация выполняется только здесь:
// бизнес-логика видит исключительно канонические domain-модели.

// rawBooking модель бронирования из SalonService
type rawBooking struct {
	ID             string  `json:"id"`
	ClientID       string  `json:"clientId"`
	ProfessionalID string  `json:"professionalId"`
	ServiceID      string  `json:"serviceId"`
	SiteID         string  `json:"siteId"`
	Date           string  `json:"date"`
	StartTime      string  `json:"startTime"` // списочный эндпоинт
	Start          string  `json:"start"`     // календарный эндпоинт
	EndTime        string  `json:"endTime"`
	End            string  `json:"end"`
	Status         string  `json:"status"`
	ClientName     string  `json:"clientName"`
	ServiceName    string  `json:"serviceName"`
	ServicePrice   float64 `json:"servicePrice"`
	Notes          *string `json:"notes,omitempty"`
}

func (r *rawBooking) toDomain() (*domain.Booking, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: booking %s: bad date %q", ErrInvalidResponse, r.ID, r.Date)
	}

	start, err := types.NewTimeStringFromString(firstNonEmpty(r.StartTime, r.Start))
	if err != nil {
		return nil, fmt.Errorf("%w: booking %s: bad start time: %v", ErrInvalidResponse, r.ID, err)
	}
	end, err := types.NewTimeStringFromString(firstNonEmpty(r.EndTime, r.End))
	if err != nil {
		return nil, fmt.Errorf("%w: booking %s: bad end time: %v", ErrInvalidResponse, r.ID, err)
	}

	return &domain.Booking{
		ID:             r.ID,
		ClientID:       r.ClientID,
		ProfessionalID: r.ProfessionalID,
		ServiceID:      r.ServiceID,
		SiteID:         r.SiteID,
		Date:           date,
		StartTime:      start,
		EndTime:        end,
		Status:         domain.BookingStatus(r.Status),
		ClientName:     r.ClientName,
		ServiceName:    r.ServiceName,
		ServicePrice:   r.ServicePrice,
		Notes:          r.Notes,
	}, nil
}

// rawRecurrence модель правила повторения из SalonService.
// TerminationValue несет либо число повторений, либо дату -
// в зависимости от terminationType.
type rawRecurrence struct {
	Type             string          `json:"type"`
	Interval         int             `json:"interval"`
	TerminationType  string          `json:"terminationType"`
	TerminationValue json.RawMessage `json:"terminationValue"`
	IncludeOriginal  bool            `json:"includeOriginal"`
}

func (r *rawRecurrence) toDomain() (*domain.RecurrenceRule, error) {
	rule := &domain.RecurrenceRule{
		Frequency:       domain.RecurrenceFrequency(r.Type),
		Interval:        r.Interval,
		IncludeOriginal: r.IncludeOriginal,
	}

	switch r.TerminationType {
	case "count":
		rule.Termination = domain.TerminationAfterCount
		if err := json.Unmarshal(r.TerminationValue, &rule.Count); err != nil {
			return nil, fmt.Errorf("%w: recurrence: bad count value: %v", ErrInvalidResponse, err)
		}
	case "date":
		rule.Termination = domain.TerminationOnDate
		var raw string
		if err := json.Unmarshal(r.TerminationValue, &raw); err != nil {
			return nil, fmt.Errorf("%w: recurrence: bad date value: %v", ErrInvalidResponse, err)
		}
		until, err := parseDateTime(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: recurrence: bad termination date %q", ErrInvalidResponse, raw)
		}
		rule.Until = until
	default:
		return nil, fmt.Errorf("%w: recurrence: unknown termination type %q", ErrInvalidResponse, r.TerminationType)
	}

	return rule, nil
}

// rawBlackout модель окна недоступности из SalonService
type rawBlackout struct {
	ID             string         `json:"id"`
	ProfessionalID string         `json:"professionalId"`
	Motive         string         `json:"motive"`
	StartDateTime  string         `json:"startDateTime"`
	EndDateTime    string         `json:"endDateTime"`
	Recurrence     *rawRecurrence `json:"recurrence,omitempty"`
}

func (r *rawBlackout) toDomain() (*domain.BlackoutWindow, error) {
	start, err := parseDateTime(r.StartDateTime)
	if err != nil {
		return nil, fmt.Errorf("%w: blackout %s: bad start %q", ErrInvalidResponse, r.ID, r.StartDateTime)
	}
	end, err := parseDateTime(r.EndDateTime)
	if err != nil {
		return nil, fmt.Errorf("%w: blackout %s: bad end %q", ErrInvalidResponse, r.ID, r.EndDateTime)
	}

	w := &domain.BlackoutWindow{
		ID:             r.ID,
		ProfessionalID: r.ProfessionalID,
		Motive:         r.Motive,
		StartDateTime:  start,
		EndDateTime:    end,
	}

	if r.Recurrence != nil {
		rule, err := r.Recurrence.toDomain()
		if err != nil {
			return nil, err
		}
		w.Recurrence = rule
	}

	return w, nil
}

// rawService модель услуги из каталога SalonService
type rawService struct {
	ID                  string  `json:"id"`
	LegacyReferenceCode *string `json:"legacyReferenceCode,omitempty"`
	LegacyCode          *string `json:"legacyCode,omitempty"` // старое имя того же поля
	Name                string  `json:"name"`
	DurationMinutes     int     `json:"durationMinutes"`
	Duration            int     `json:"duration"` // старое имя того же поля
	Price               float64 `json:"price"`
	Category            string  `json:"category"`
}

func (r *rawService) toDomain() domain.Service {
	legacy := r.LegacyReferenceCode
	if legacy == nil {
		legacy = r.LegacyCode
	}

	duration := r.DurationMinutes
	if duration == 0 {
		duration = r.Duration
	}

	return domain.Service{
		ID:              r.ID,
		LegacyCode:      legacy,
		Name:            r.Name,
		DurationMinutes: duration,
		Price:           r.Price,
		Category:        r.Category,
	}
}

// rawProfessional модель профессионала из SalonService
type rawProfessional struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Name        string `json:"name"` // старое имя того же поля
	SiteID      string `json:"siteId"`
}

func (r *rawProfessional) toDomain() domain.Professional {
	return domain.Professional{
		ID:          r.ID,
		DisplayName: firstNonEmpty(r.DisplayName, r.Name),
		SiteID:      r.SiteID,
	}
}

// Capability данные о возможностях профессионала (денилист услуг)
type Capability struct {
	ProfessionalID     string   `json:"professionalId"`
	ExcludedServiceIDs []string `json:"excludedServiceIds"`
}

// rawClient модель клиента салона
type rawClient struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"` // контакт из старого эндпоинта
}

func (r *rawClient) toDomain() domain.Client {
	return domain.Client{
		ID:      r.ID,
		Name:    r.Name,
		Contact: firstNonEmpty(r.Contact, r.Phone),
	}
}

// CreateBookingRequest запрос на создание бронирования: полный черновик
// плюс денормализованные поля для отображения
type CreateBookingRequest struct {
	ClientID       string  `json:"clientId"`
	ProfessionalID string  `json:"professionalId"`
	ServiceID      string  `json:"serviceId"`
	SiteID         string  `json:"siteId"`
	Date           string  `json:"date"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	Notes          *string `json:"notes,omitempty"`

	// Денормализация для истории и списков
	ClientName       string  `json:"clientName"`
	ProfessionalName string  `json:"professionalName"`
	ServiceName      string  `json:"serviceName"`
	ServicePrice     float64 `json:"servicePrice"`
}

// conflictPayload тело структурированной ошибки конфликта от SalonService
type conflictPayload struct {
	Kind       string `json:"kind"`
	BookingID  string `json:"bookingId,omitempty"`
	BlackoutID string `json:"blackoutId,omitempty"`
	Motive     string `json:"motive,omitempty"`
	Message    string `json:"message"`
}

// CreateBlackoutRequest запрос на создание окна недоступности
type CreateBlackoutRequest struct {
	ProfessionalID string         `json:"professionalId"`
	Motive         string         `json:"motive"`
	StartDateTime  string         `json:"startDateTime"`
	EndDateTime    string         `json:"endDateTime"`
	Recurrence     *rawRecurrence `json:"recurrence,omitempty"`
}

// ErrorResponse модель ошибки от SalonService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// parseDateTime принимает обе исторические формы датавремени API
func parseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
