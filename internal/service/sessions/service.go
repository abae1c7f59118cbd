package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/internal/infra/sessionstore"
	"github.com/m04kA/SLN-SchedulingService/internal/integrations/salonservice"
	"github.com/m04kA/SLN-SchedulingService/internal/scheduling/eligibility"
	"github.com/m04kA/SLN-SchedulingService/internal/service/sessions/models"
	"github.com/m04kA/SLN-SchedulingService/internal/workflow"
	"github.com/m04kA/SLN-SchedulingService/pkg/metrics"
)

// Service сервис управления workflow-сессиями подбора бронирования
type Service struct {
	store   SessionStore
	salon   SalonServiceClient
	metrics *metrics.Metrics
	log     Logger
}

func NewService(store SessionStore, salon SalonServiceClient, m *metrics.Metrics, log Logger) *Service {
	return &Service{
		store:   store,
		salon:   salon,
		metrics: m,
		log:     log,
	}
}

// Start создает новую workflow-сессию в состоянии выбора клиента
func (s *Service) Start(ctx context.Context, req models.StartSessionRequest) (*models.SessionResponse, error) {
	if req.UserID == "" || req.SiteID == "" {
		return nil, fmt.Errorf("%w: userId and siteId are required", ErrInvalidInput)
	}

	now := time.Now()
	session := &sessionstore.Session{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		SiteID:    req.SiteID,
		Machine:   workflow.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Save(ctx, session); err != nil {
		s.log.Error("Start: failed to save session: %v", err)
		return nil, fmt.Errorf("%w: failed to save session: %v", ErrInternal, err)
	}

	if s.metrics != nil {
		s.metrics.SessionsStarted.Inc()
	}
	s.log.Info("Start: session %s created for user %s", session.ID, session.UserID)

	return models.FromSession(session), nil
}

// Get возвращает текущее состояние сессии
func (s *Service) Get(ctx context.Context, sessionID, userID string) (*models.SessionResponse, error) {
	session, err := s.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	return models.FromSession(session), nil
}

// SelectClient выбирает клиента будущего бронирования. Клиент
// подтверждается у SalonService перед применением к машине.
func (s *Service) SelectClient(ctx context.Context, sessionID, userID, clientID string) (*models.SessionResponse, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: clientId is required", ErrInvalidInput)
	}

	session, err := s.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	client, err := s.salon.GetClient(ctx, clientID)
	if err != nil {
		return nil, s.mapUpstreamError("SelectClient", err)
	}

	if err := session.Machine.SelectClient(*client); err != nil {
		return nil, s.mapWorkflowError("SelectClient", err)
	}

	if err := s.store.Save(ctx, session); err != nil {
		s.log.Error("SelectClient: failed to save session %s: %v", session.ID, err)
		return nil, fmt.Errorf("%w: failed to save session: %v", ErrInternal, err)
	}

	return models.FromSession(session), nil
}

// SelectProfessional выбирает профессионала и возвращает список услуг,
// которые он выполняет. Услуги из денилиста профессионала в список
// не попадают; профессионал без единой доступной услуги отклоняется.
func (s *Service) SelectProfessional(ctx context.Context, sessionID, userID, professionalID string) (*models.SessionResponse, error) {
	if professionalID == "" {
		return nil, fmt.Errorf("%w: professionalId is required", ErrInvalidInput)
	}

	session, err := s.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	professional, err := s.salon.GetProfessional(ctx, professionalID)
	if err != nil {
		return nil, s.mapUpstreamError("SelectProfessional", err)
	}

	catalog, err := s.salon.ListServices(ctx, session.SiteID)
	if err != nil {
		return nil, s.mapUpstreamError("SelectProfessional", err)
	}

	if err := session.Machine.SelectProfessional(*professional, catalog); err != nil {
		return nil, s.mapWorkflowError("SelectProfessional", err)
	}

	if err := s.store.Save(ctx, session); err != nil {
		s.log.Error("SelectProfessional: failed to save session %s: %v", session.ID, err)
		return nil, fmt.Errorf("%w: failed to save session: %v", ErrInternal, err)
	}

	return models.FromSessionWithCatalog(session, catalog), nil
}

// SelectService выбирает услугу каталога. Услуга ищется по id, затем по
// legacy-коду: старые интеграции присылают код вместо идентификатора.
func (s *Service) SelectService(ctx context.Context, sessionID, userID, serviceID string) (*models.SessionResponse, error) {
	if serviceID == "" {
		return nil, fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	session, err := s.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.salon.ListServices(ctx, session.SiteID)
	if err != nil {
		return nil, s.mapUpstreamError("SelectService", err)
	}

	service, ok := findService(catalog, serviceID)
	if !ok {
		return nil, fmt.Errorf("%w: service %s", ErrServiceNotFound, serviceID)
	}

	if err := session.Machine.SelectService(service); err != nil {
		return nil, s.mapWorkflowError("SelectService", err)
	}

	if err := s.store.Save(ctx, session); err != nil {
		s.log.Error("SelectService: failed to save session %s: %v", session.ID, err)
		return nil, fmt.Errorf("%w: failed to save session: %v", ErrInternal, err)
	}

	return models.FromSession(session), nil
}

// EligibleServices возвращает список услуг площадки, которые выполняет
// профессионал. Услуги из денилиста исключаются по id и по legacy-коду.
func (s *Service) EligibleServices(ctx context.Context, professionalID, siteID string) ([]models.ServiceDTO, error) {
	if professionalID == "" || siteID == "" {
		return nil, fmt.Errorf("%w: professionalId and siteId are required", ErrInvalidInput)
	}

	professional, err := s.salon.GetProfessional(ctx, professionalID)
	if err != nil {
		return nil, s.mapUpstreamError("EligibleServices", err)
	}

	catalog, err := s.salon.ListServices(ctx, siteID)
	if err != nil {
		return nil, s.mapUpstreamError("EligibleServices", err)
	}

	eligible := eligibility.EligibleServices(catalog, *professional)
	result := make([]models.ServiceDTO, 0, len(eligible))
	for _, svc := range eligible {
		result = append(result, models.FromDomainService(svc))
	}
	return result, nil
}

// Back возвращает сессию на предыдущий шаг workflow
func (s *Service) Back(ctx context.Context, sessionID, userID string) (*models.SessionResponse, error) {
	session, err := s.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	if err := session.Machine.Back(); err != nil {
		return nil, s.mapWorkflowError("Back", err)
	}

	if err := s.store.Save(ctx, session); err != nil {
		s.log.Error("Back: failed to save session %s: %v", session.ID, err)
		return nil, fmt.Errorf("%w: failed to save session: %v", ErrInternal, err)
	}

	return models.FromSession(session), nil
}

// Cancel завершает сессию и удаляет ее из хранилища. Отмена без побочных
// эффектов: на стороне SalonService ничего не создавалось.
func (s *Service) Cancel(ctx context.Context, sessionID, userID string) error {
	session, err := s.loadOwned(ctx, sessionID, userID)
	if err != nil {
		return err
	}

	if err := session.Machine.Cancel(); err != nil {
		return s.mapWorkflowError("Cancel", err)
	}

	if err := s.store.Delete(ctx, session.ID); err != nil {
		s.log.Error("Cancel: failed to delete session %s: %v", session.ID, err)
		return fmt.Errorf("%w: failed to delete session: %v", ErrInternal, err)
	}

	if s.metrics != nil {
		s.metrics.SessionsCancelled.Inc()
	}
	s.log.Info("Cancel: session %s cancelled by user %s", session.ID, userID)

	return nil
}

// loadOwned загружает сессию и проверяет владельца
func (s *Service) loadOwned(ctx context.Context, sessionID, userID string) (*sessionstore.Session, error) {
	if sessionID == "" || userID == "" {
		return nil, fmt.Errorf("%w: sessionId and userId are required", ErrInvalidInput)
	}

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionstore.ErrSessionNotFound) {
			return nil, fmt.Errorf("%w: session %s", ErrSessionNotFound, sessionID)
		}
		s.log.Error("loadOwned: failed to get session %s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	if session.UserID != userID {
		s.log.Warn("loadOwned: user %s tried to access session %s owned by %s", userID, sessionID, session.UserID)
		return nil, fmt.Errorf("%w: session %s", ErrAccessDenied, sessionID)
	}

	return session, nil
}

// mapUpstreamError переводит ошибки SalonService в ошибки сервиса
func (s *Service) mapUpstreamError(op string, err error) error {
	switch {
	case errors.Is(err, salonservice.ErrClientNotFound):
		return fmt.Errorf("%w: %v", ErrClientNotFound, err)
	case errors.Is(err, salonservice.ErrProfessionalNotFound):
		return fmt.Errorf("%w: %v", ErrProfessionalNotFound, err)
	case errors.Is(err, salonservice.ErrServiceNotFound):
		return fmt.Errorf("%w: %v", ErrServiceNotFound, err)
	case errors.Is(err, salonservice.ErrUnauthorized):
		s.log.Error("%s: upstream authorization failed: %v", op, err)
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	case errors.Is(err, salonservice.ErrUnavailable):
		s.log.Warn("%s: salon service unavailable: %v", op, err)
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	default:
		s.log.Error("%s: upstream call failed: %v", op, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// mapWorkflowError переводит ошибки машины состояний в ошибки сервиса.
// ValidationError пропускается как есть: список недостающих полей нужен
// обработчику для ответа пользователю.
func (s *Service) mapWorkflowError(op string, err error) error {
	var validationErr *workflow.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr
	}

	switch {
	case errors.Is(err, workflow.ErrTerminalState):
		return fmt.Errorf("%w: %v", ErrSessionFinished, err)
	case errors.Is(err, workflow.ErrServiceNotEligible):
		return fmt.Errorf("%w: %v", ErrServiceNotEligible, err)
	case errors.Is(err, workflow.ErrNoEligibleServices):
		return fmt.Errorf("%w: %v", ErrNoEligibleServices, err)
	case errors.Is(err, workflow.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, workflow.ErrInvalidTransition):
		return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	default:
		s.log.Error("%s: unexpected workflow error: %v", op, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// findService ищет услугу по id или по legacy-коду
func findService(catalog []domain.Service, key string) (domain.Service, bool) {
	for _, svc := range catalog {
		if svc.ID == key {
			return svc, true
		}
		if svc.HasLegacyCode() && *svc.LegacyCode == key {
			return svc, true
		}
	}
	return domain.Service{}, false
}
