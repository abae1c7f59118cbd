package timegrid

import "errors"

var (
	// ErrInvalidBounds возвращается, когда границы сетки некорректны (конец не позже начала)
	ErrInvalidBounds = errors.New("timegrid: invalid grid bounds")

	// ErrInvalidGranularity возвращается при недопустимом шаге сетки
	ErrInvalidGranularity = errors.New("timegrid: invalid granularity")

	// ErrOutOfRange возвращается, когда время выходит за границы рабочей сетки
	ErrOutOfRange = errors.New("timegrid: time is outside the operating window")
)
