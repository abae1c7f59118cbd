package recurrence

import "errors"

var (
	// ErrInvalidRule возвращается при некорректном правиле повторения
	// (неизвестная частота, интервал < 1, пустое условие завершения)
	ErrInvalidRule = errors.New("recurrence: invalid recurrence rule")

	// ErrInvalidWindow возвращается, когда окно недоступности некорректно
	// (конец не позже начала)
	ErrInvalidWindow = errors.New("recurrence: invalid blackout window")
)
