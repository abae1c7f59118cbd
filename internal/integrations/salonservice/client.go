package salonservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
)

// Client клиент для работы с SalonService - авторитетным хранилищем
// бронирований, окон недоступности, каталога услуг и данных профессионалов
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NewClient создает новый экземпляр клиента SalonService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ListBookings получает снапшот бронирований с фильтрацией по салону,
// профессионалу и дате. Снапшот валиден на момент запроса: авторитетная
// проверка пересечений остается за SalonService.
func (c *Client) ListBookings(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	query := url.Values{}
	if filter.SiteID != nil {
		query.Set("siteId", *filter.SiteID)
	}
	if filter.ProfessionalID != nil {
		query.Set("professionalId", *filter.ProfessionalID)
	}
	if filter.Date != nil {
		query.Set("date", filter.Date.Format(domain.DateFormat))
	}

	endpoint := fmt.Sprintf("%s/internal/bookings?%s", c.baseURL, query.Encode())

	var raw []rawBooking
	if err := c.getJSON(ctx, endpoint, nil, &raw); err != nil {
		return nil, err
	}

	bookings := make([]*domain.Booking, 0, len(raw))
	for i := range raw {
		booking, err := raw[i].toDomain()
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

// ListBlackouts получает окна недоступности профессионала
func (c *Client) ListBlackouts(ctx context.Context, professionalID string) ([]domain.BlackoutWindow, error) {
	endpoint := fmt.Sprintf("%s/internal/professionals/%s/blackouts", c.baseURL, url.PathEscape(professionalID))

	var raw []rawBlackout
	if err := c.getJSON(ctx, endpoint, ErrProfessionalNotFound, &raw); err != nil {
		return nil, err
	}

	windows := make([]domain.BlackoutWindow, 0, len(raw))
	for i := range raw {
		w, err := raw[i].toDomain()
		if err != nil {
			return nil, err
		}
		windows = append(windows, *w)
	}
	return windows, nil
}

// CreateBlackout создает окно недоступности на стороне SalonService
func (c *Client) CreateBlackout(ctx context.Context, req CreateBlackoutRequest) (*domain.BlackoutWindow, error) {
	endpoint := fmt.Sprintf("%s/internal/blackouts", c.baseURL)

	var raw rawBlackout
	if err := c.postJSON(ctx, endpoint, req, &raw); err != nil {
		return nil, err
	}
	return raw.toDomain()
}

// ListServices получает каталог услуг салона
func (c *Client) ListServices(ctx context.Context, siteID string) ([]domain.Service, error) {
	endpoint := fmt.Sprintf("%s/internal/sites/%s/services", c.baseURL, url.PathEscape(siteID))

	var raw []rawService
	if err := c.getJSON(ctx, endpoint, ErrServiceNotFound, &raw); err != nil {
		return nil, err
	}

	services := make([]domain.Service, 0, len(raw))
	for i := range raw {
		services = append(services, raw[i].toDomain())
	}
	return services, nil
}

// GetProfessional получает профессионала по идентификатору
func (c *Client) GetProfessional(ctx context.Context, professionalID string) (*domain.Professional, error) {
	endpoint := fmt.Sprintf("%s/internal/professionals/%s", c.baseURL, url.PathEscape(professionalID))

	var raw rawProfessional
	if err := c.getJSON(ctx, endpoint, ErrProfessionalNotFound, &raw); err != nil {
		return nil, err
	}

	professional := raw.toDomain()

	// Денилист услуг приходит отдельным эндпоинтом возможностей
	capability, err := c.GetCapability(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	professional.ExcludedServiceIDs = capability.ExcludedServiceIDs

	return &professional, nil
}

// GetCapability получает денилист услуг профессионала
func (c *Client) GetCapability(ctx context.Context, professionalID string) (*Capability, error) {
	endpoint := fmt.Sprintf("%s/internal/professionals/%s/capability", c.baseURL, url.PathEscape(professionalID))

	var capability Capability
	if err := c.getJSON(ctx, endpoint, ErrProfessionalNotFound, &capability); err != nil {
		return nil, err
	}
	return &capability, nil
}

// GetClient получает клиента салона по идентификатору
func (c *Client) GetClient(ctx context.Context, clientID string) (*domain.Client, error) {
	endpoint := fmt.Sprintf("%s/internal/clients/%s", c.baseURL, url.PathEscape(clientID))

	var raw rawClient
	if err := c.getJSON(ctx, endpoint, ErrClientNotFound, &raw); err != nil {
		return nil, err
	}

	client := raw.toDomain()
	return &client, nil
}

// CreateBooking отправляет черновик бронирования в SalonService.
// Сервер выполняет авторитетную проверку пересечений; структурированный
// конфликт возвращается как *ConflictError и окончателен для workflow.
func (c *Client) CreateBooking(ctx context.Context, draft domain.BookingDraft) (*domain.Booking, error) {
	c.log.Info("Submitting booking draft: client=%s, professional=%s, service=%s, date=%s %s-%s",
		draft.Client.ID, draft.Professional.ID, draft.Service.ID,
		draft.Date.Format(domain.DateFormat), draft.StartTime, draft.EndTime)

	req := CreateBookingRequest{
		ClientID:         draft.Client.ID,
		ProfessionalID:   draft.Professional.ID,
		ServiceID:        draft.Service.ID,
		SiteID:           draft.Professional.SiteID,
		Date:             draft.Date.Format(domain.DateFormat),
		StartTime:        draft.StartTime.String(),
		EndTime:          draft.EndTime.String(),
		Notes:            draft.Notes,
		ClientName:       draft.Client.Name,
		ProfessionalName: draft.Professional.DisplayName,
		ServiceName:      draft.Service.Name,
		ServicePrice:     draft.Service.Price,
	}

	endpoint := fmt.Sprintf("%s/internal/bookings", c.baseURL)

	var raw rawBooking
	if err := c.postJSON(ctx, endpoint, req, &raw); err != nil {
		return nil, err
	}
	return raw.toDomain()
}

// getJSON выполняет GET запрос и декодирует ответ.
// notFoundErr подставляется на 404; nil означает, что 404 для этого
// эндпоинта - некорректный ответ.
func (c *Client) getJSON(ctx context.Context, endpoint string, notFoundErr error, out interface{}) error {
	c.log.Debug("GET %s", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Транзиентная сетевая ошибка: запрос можно повторить
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		if notFoundErr != nil {
			return notFoundErr
		}
		return fmt.Errorf("%w: unexpected 404 from %s", ErrInvalidResponse, endpoint)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: upstream returned %d", ErrUnavailable, resp.StatusCode)
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

// postJSON выполняет POST запрос с JSON телом и декодирует ответ.
// 409 разбирается в структурированный *ConflictError.
func (c *Client) postJSON(ctx context.Context, endpoint string, body interface{}, out interface{}) error {
	c.log.Debug("POST %s", endpoint)

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusConflict:
		var payload conflictPayload
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return fmt.Errorf("%w: failed to decode conflict payload: %v", ErrInvalidResponse, err)
		}
		return &ConflictError{
			Kind:       ConflictKind(payload.Kind),
			BookingID:  payload.BookingID,
			BlackoutID: payload.BlackoutID,
			Motive:     payload.Motive,
			Message:    payload.Message,
		}
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: upstream returned %d", ErrUnavailable, resp.StatusCode)
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}
