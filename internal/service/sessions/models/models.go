package models

import (
	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/internal/infra/sessionstore"
	"github.com/m04kA/SLN-SchedulingService/internal/scheduling/eligibility"
)

// Request модели

// StartSessionRequest запрос на создание workflow-сессии
type StartSessionRequest struct {
	UserID string `json:"userId"`
	SiteID string `json:"siteId"`
}

// Response модели

// ClientDTO клиент в ответе сессии
type ClientDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
}

// ProfessionalDTO профессионал в ответе сессии
type ProfessionalDTO struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	SiteID      string `json:"siteId"`
}

// ServiceDTO услуга в ответе сессии
type ServiceDTO struct {
	ID              string  `json:"id"`
	LegacyCode      *string `json:"legacyCode,omitempty"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Category        string  `json:"category,omitempty"`
}

// SessionResponse текущее состояние workflow-сессии
type SessionResponse struct {
	SessionID string `json:"sessionId"`
	State     string `json:"state"`

	Client       *ClientDTO       `json:"client,omitempty"`
	Professional *ProfessionalDTO `json:"professional,omitempty"`
	Service      *ServiceDTO      `json:"service,omitempty"`

	Date      string  `json:"date,omitempty"`
	StartTime string  `json:"startTime,omitempty"`
	EndTime   string  `json:"endTime,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	Summary   string  `json:"summary,omitempty"`

	// Заполняется после выбора профессионала: услуги, которые он выполняет
	EligibleServices []ServiceDTO `json:"eligibleServices,omitempty"`
}

// FromDomainService конвертирует услугу в DTO
func FromDomainService(svc domain.Service) ServiceDTO {
	return ServiceDTO{
		ID:              svc.ID,
		LegacyCode:      svc.LegacyCode,
		Name:            svc.Name,
		DurationMinutes: svc.DurationMinutes,
		Price:           svc.Price,
		Category:        svc.Category,
	}
}

// FromSession конвертирует сессию в ответ API
func FromSession(session *sessionstore.Session) *SessionResponse {
	m := session.Machine

	resp := &SessionResponse{
		SessionID: session.ID,
		State:     string(m.State),
		Notes:     m.Notes,
		Summary:   m.Summary,
	}

	if m.Client != nil {
		resp.Client = &ClientDTO{ID: m.Client.ID, Name: m.Client.Name, Contact: m.Client.Contact}
	}
	if m.Professional != nil {
		resp.Professional = &ProfessionalDTO{
			ID:          m.Professional.ID,
			DisplayName: m.Professional.DisplayName,
			SiteID:      m.Professional.SiteID,
		}
	}
	if m.Service != nil {
		dto := FromDomainService(*m.Service)
		resp.Service = &dto
	}
	if !m.Date.IsZero() {
		resp.Date = m.Date.Format(domain.DateFormat)
	}
	if !m.StartTime.IsZero() {
		resp.StartTime = m.StartTime.String()
	}
	if !m.EndTime.IsZero() {
		resp.EndTime = m.EndTime.String()
	}

	return resp
}

// FromSessionWithCatalog строит ответ сессии с перефильтрованным каталогом
// для выбранного профессионала
func FromSessionWithCatalog(session *sessionstore.Session, catalog []domain.Service) *SessionResponse {
	resp := FromSession(session)

	if session.Machine.Professional != nil {
		eligible := eligibility.EligibleServices(catalog, *session.Machine.Professional)
		resp.EligibleServices = make([]ServiceDTO, 0, len(eligible))
		for _, svc := range eligible {
			resp.EligibleServices = append(resp.EligibleServices, FromDomainService(svc))
		}
	}

	return resp
}
