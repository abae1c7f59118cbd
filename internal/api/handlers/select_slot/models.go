package select_slot

import (
	"time"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/internal/scheduling/availability"
	selectSlot "github.com/m04kA/SLN-SchedulingService/internal/usecase/select_slot"
	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

// SelectSlotRequest HTTP request model
type SelectSlotRequest struct {
	Date      string  `json:"date"`      // "2025-10-15"
	StartTime string  `json:"startTime"` // "10:00"
	Notes     *string `json:"notes,omitempty"`
}

// SessionSlotResponse HTTP response model
type SessionSlotResponse struct {
	SessionID string  `json:"sessionId"`
	State     string  `json:"state"`
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Summary   string  `json:"summary"`
	Notes     *string `json:"notes,omitempty"`
}

// ConflictResponse HTTP response model для занятого слота
type ConflictResponse struct {
	Error      string `json:"error"`
	Kind       string `json:"kind"`
	BookingID  string `json:"bookingId,omitempty"`
	BlackoutID string `json:"blackoutId,omitempty"`
	Motive     string `json:"motive,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SelectSlotRequest) ToUseCaseRequest(sessionID, userID string) (*selectSlot.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &selectSlot.Request{
		SessionID: sessionID,
		UserID:    userID,
		Date:      date,
		StartTime: startTime,
		Notes:     r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *selectSlot.Response) *SessionSlotResponse {
	return &SessionSlotResponse{
		SessionID: resp.SessionID,
		State:     resp.State,
		Date:      resp.Date.Format(domain.DateFormat),
		StartTime: resp.StartTime.String(),
		EndTime:   resp.EndTime.String(),
		Summary:   resp.Summary,
		Notes:     resp.Notes,
	}
}

// FromConflict конвертирует причину конфликта в HTTP response
func FromConflict(message string, c *availability.Conflict) *ConflictResponse {
	return &ConflictResponse{
		Error:      message,
		Kind:       string(c.Kind),
		BookingID:  c.BookingID,
		BlackoutID: c.BlackoutID,
		Motive:     c.Motive,
	}
}
