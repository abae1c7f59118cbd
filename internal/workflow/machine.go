package workflow

import (
	"fmt"
	"time"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/internal/scheduling/eligibility"
	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

// State состояние workflow подбора бронирования.
// Машина состояний явная: каждый переход проверяет текущее состояние,
// недопустимые комбинации выбора непредставимы.
type State string

const (
	StateSelectingClient       State = "selecting_client"
	StateSelectingProfessional State = "selecting_professional"
	StateSelectingService      State = "selecting_service"
	StateSelectingDateTime     State = "selecting_datetime"
	StateReviewAndProceed      State = "review_and_proceed"
	StateSubmitted             State = "submitted"
	StateCancelled             State = "cancelled"
)

// IsTerminal проверяет, завершено ли состояние
func (s State) IsTerminal() bool {
	return s == StateSubmitted || s == StateCancelled
}

// Machine машина состояний одной workflow-сессии подбора бронирования.
// Сессия владеет машиной эксклюзивно; машина сериализуется в хранилище
// сессий между HTTP-запросами.
//
// Прямой порядок переходов:
//
//	SelectingClient -> SelectingProfessional -> SelectingService ->
//	SelectingDateTime -> ReviewAndProceed -> Submitted | Cancelled
//
// Обратные переходы разрешены всегда (повторный выбор), зависимые поля
// перепроверяются: смена профессионала перефильтровывает услуги, смена
// услуги сбрасывает выбранный слот.
type Machine struct {
	State State `json:"state"`

	Client       *domain.Client       `json:"client,omitempty"`
	Professional *domain.Professional `json:"professional,omitempty"`
	Service      *domain.Service      `json:"service,omitempty"`

	Date      time.Time        `json:"date,omitempty"`
	StartTime types.TimeString `json:"startTime,omitempty"`
	EndTime   types.TimeString `json:"endTime,omitempty"`
	Notes     *string          `json:"notes,omitempty"`

	Summary string `json:"summary,omitempty"`
}

// New создает машину в начальном состоянии выбора клиента
func New() *Machine {
	return &Machine{State: StateSelectingClient}
}

// SelectClient выбирает клиента. Разрешен из любого незавершенного
// состояния: повторный выбор клиента не трогает остальные поля.
func (m *Machine) SelectClient(client domain.Client) error {
	if err := m.ensureNotTerminal(); err != nil {
		return err
	}
	if client.ID == "" {
		return fmt.Errorf("%w: client id is required", ErrInvalidInput)
	}

	m.Client = &client
	if m.State == StateSelectingClient {
		m.State = StateSelectingProfessional
	}
	return nil
}

// SelectProfessional выбирает профессионала и перефильтровывает каталог:
// ранее выбранная услуга сбрасывается, если новый профессионал ее не
// выполняет (вместе с выбранным слотом).
func (m *Machine) SelectProfessional(professional domain.Professional, catalog []domain.Service) error {
	if err := m.ensureNotTerminal(); err != nil {
		return err
	}
	if professional.ID == "" {
		return fmt.Errorf("%w: professional id is required", ErrInvalidInput)
	}
	if m.Client == nil {
		return &ValidationError{MissingFields: []string{"client"}}
	}
	if !eligibility.HasEligibleServices(professional, catalog) {
		return ErrNoEligibleServices
	}

	m.Professional = &professional

	// Перепроверка зависимого поля: услуга могла стать недоступной
	if m.Service != nil && !eligibility.IsEligible(*m.Service, professional) {
		m.Service = nil
		m.clearSlot()
	}

	m.State = StateSelectingService
	return nil
}

// SelectService выбирает услугу из каталога выбранного профессионала.
// Смена услуги сбрасывает выбранное время: длительность изменилась,
// доступность нужно проверять заново.
func (m *Machine) SelectService(service domain.Service) error {
	if err := m.ensureNotTerminal(); err != nil {
		return err
	}
	if service.ID == "" || service.DurationMinutes <= 0 {
		return fmt.Errorf("%w: service id and positive duration are required", ErrInvalidInput)
	}
	if missing := m.missingUpTo("service"); len(missing) > 0 {
		return &ValidationError{MissingFields: missing}
	}
	if !eligibility.IsEligible(service, *m.Professional) {
		return ErrServiceNotEligible
	}

	if m.Service == nil || m.Service.ID != service.ID {
		m.clearSlot()
	}
	m.Service = &service
	m.State = StateSelectingDateTime
	return nil
}

// SelectSlot фиксирует кандидата даты и времени начала. Время окончания
// выводится из длительности услуги. Машина остается в SelectingDateTime:
// переход в ReviewAndProceed выполняется через EnterReview после
// консультативной проверки доступности.
func (m *Machine) SelectSlot(date time.Time, start types.TimeString) error {
	if err := m.ensureNotTerminal(); err != nil {
		return err
	}
	if missing := m.missingUpTo("slot"); len(missing) > 0 {
		return &ValidationError{MissingFields: missing}
	}
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	end, err := start.AddMinutes(m.Service.DurationMinutes)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	m.Date = date
	m.StartTime = start
	m.EndTime = end
	m.State = StateSelectingDateTime
	return nil
}

// SetNotes добавляет заметки к будущему бронированию
func (m *Machine) SetNotes(notes *string) error {
	if err := m.ensureNotTerminal(); err != nil {
		return err
	}
	if notes != nil && len(*notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	m.Notes = notes
	return nil
}

// EnterReview переводит машину в ReviewAndProceed. Требует полного набора
// выбора: отсутствующие поля перечисляются в ValidationError. Вызывающий
// обязан проверить доступность слота резолвером до вызова.
func (m *Machine) EnterReview() error {
	if err := m.ensureNotTerminal(); err != nil {
		return err
	}
	if missing := m.MissingFields(); len(missing) > 0 {
		return &ValidationError{MissingFields: missing}
	}

	m.Summary = fmt.Sprintf("%s, %s %s–%s: %s у мастера %s",
		m.Date.Format(domain.DateFormat), m.StartTime, m.EndTime,
		m.Service.Name, m.Client.Name, m.Professional.DisplayName)
	m.State = StateReviewAndProceed
	return nil
}

// Draft собирает черновик бронирования из текущего выбора без смены
// состояния. Доступен только из ReviewAndProceed: до подтверждения
// сервером машина остается в review и конфликт можно пересмотреть.
func (m *Machine) Draft() (domain.BookingDraft, error) {
	if m.State != StateReviewAndProceed {
		return domain.BookingDraft{}, fmt.Errorf("%w: draft requested from %s", ErrInvalidTransition, m.State)
	}

	return domain.BookingDraft{
		Client:       *m.Client,
		Professional: *m.Professional,
		Service:      *m.Service,
		Date:         m.Date,
		StartTime:    m.StartTime,
		EndTime:      m.EndTime,
		Notes:        m.Notes,
		Summary:      m.Summary,
	}, nil
}

// Submit завершает workflow и выдает неизменяемый черновик бронирования.
// Допускается только из ReviewAndProceed; состояние становится терминальным.
func (m *Machine) Submit() (domain.BookingDraft, error) {
	draft, err := m.Draft()
	if err != nil {
		return domain.BookingDraft{}, err
	}

	m.State = StateSubmitted
	return draft, nil
}

// Cancel завершает сессию без побочных эффектов
func (m *Machine) Cancel() error {
	if err := m.ensureNotTerminal(); err != nil {
		return err
	}
	m.State = StateCancelled
	return nil
}

// Back возвращает машину на предыдущий шаг для смены выбора.
// Сделанный выбор сохраняется: повторный проход перепроверит его.
func (m *Machine) Back() error {
	switch m.State {
	case StateSelectingProfessional:
		m.State = StateSelectingClient
	case StateSelectingService:
		m.State = StateSelectingProfessional
	case StateSelectingDateTime:
		m.State = StateSelectingService
	case StateReviewAndProceed:
		m.State = StateSelectingDateTime
	case StateSelectingClient:
		return fmt.Errorf("%w: already at the first step", ErrInvalidTransition)
	default:
		return ErrTerminalState
	}
	return nil
}

// MissingFields возвращает список обязательных полей, не заполненных
// к текущему моменту, в порядке шагов workflow
func (m *Machine) MissingFields() []string {
	missing := make([]string, 0, 5)
	if m.Client == nil {
		missing = append(missing, "client")
	}
	if m.Professional == nil {
		missing = append(missing, "professional")
	}
	if m.Service == nil {
		missing = append(missing, "service")
	}
	if m.Date.IsZero() {
		missing = append(missing, "date")
	}
	if m.StartTime.IsZero() {
		missing = append(missing, "time")
	}
	return missing
}

// missingUpTo возвращает незаполненные поля-предпосылки для указанного шага
func (m *Machine) missingUpTo(step string) []string {
	missing := make([]string, 0, 3)
	if m.Client == nil {
		missing = append(missing, "client")
	}
	if step == "service" || step == "slot" {
		if m.Professional == nil {
			missing = append(missing, "professional")
		}
	}
	if step == "slot" {
		if m.Service == nil {
			missing = append(missing, "service")
		}
	}
	return missing
}

func (m *Machine) ensureNotTerminal() error {
	if m.State.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrTerminalState, m.State)
	}
	return nil
}

func (m *Machine) clearSlot() {
	m.Date = time.Time{}
	m.StartTime = ""
	m.EndTime = ""
	m.Summary = ""
}
