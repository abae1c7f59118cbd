package sessions

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("sessions: session not found or expired")

	// ErrAccessDenied возвращается, когда сессия принадлежит другому пользователю
	ErrAccessDenied = errors.New("sessions: access denied")

	// ErrClientNotFound возвращается, когда клиент не существует на стороне SalonService.
	// Пользователь возвращается к шагу выбора клиента.
	ErrClientNotFound = errors.New("sessions: salon client not found")

	// ErrProfessionalNotFound возвращается, когда профессионал не найден
	ErrProfessionalNotFound = errors.New("sessions: professional not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("sessions: service not found")

	// ErrServiceNotEligible возвращается, когда услуга входит в денилист профессионала
	ErrServiceNotEligible = errors.New("sessions: service is not eligible for the professional")

	// ErrNoEligibleServices возвращается, когда у профессионала нет доступных услуг
	ErrNoEligibleServices = errors.New("sessions: professional has no eligible services")

	// ErrSessionFinished возвращается при операции над завершенной сессией
	ErrSessionFinished = errors.New("sessions: session is already finished")

	// ErrInvalidTransition возвращается при недопустимом переходе workflow
	ErrInvalidTransition = errors.New("sessions: invalid workflow transition")

	// ErrUnauthorized возвращается при невалидном токене у SalonService
	ErrUnauthorized = errors.New("sessions: upstream authorization failed")

	// ErrUpstreamUnavailable возвращается при транзиентной недоступности SalonService.
	// Черновик не теряется: запрос можно повторить.
	ErrUpstreamUnavailable = errors.New("sessions: salon service unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("sessions: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("sessions: internal error")
)
