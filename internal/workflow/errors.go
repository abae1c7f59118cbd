package workflow

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidTransition возвращается при недопустимом переходе состояния
	ErrInvalidTransition = errors.New("workflow: invalid state transition")

	// ErrTerminalState возвращается при попытке изменить завершенную сессию
	ErrTerminalState = errors.New("workflow: session is in a terminal state")

	// ErrServiceNotEligible возвращается, когда выбранная услуга
	// входит в денилист выбранного профессионала
	ErrServiceNotEligible = errors.New("workflow: service is not eligible for the selected professional")

	// ErrNoEligibleServices возвращается, когда у профессионала
	// не остается ни одной доступной услуги
	ErrNoEligibleServices = errors.New("workflow: professional has no eligible services")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("workflow: invalid input data")
)

// ValidationError перечисляет обязательные поля, не заполненные
// к моменту перехода. Блокирует продвижение workflow.
type ValidationError struct {
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("workflow: required selections missing: %s", strings.Join(e.MissingFields, ", "))
}
