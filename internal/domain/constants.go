package domain

import "github.com/m04kA/SLN-SchedulingService/pkg/types"

// Default scheduling grid parameters
const (
	DefaultGridStart          = types.TimeString("05:00")
	DefaultGridEnd            = types.TimeString("19:30")
	DefaultGranularityMinutes = 30
)

// Business validation constants
const (
	MinGranularityMinutes = 5
	MaxGranularityMinutes = 240
	MaxNotesLength        = 500
	MaxMotiveLength       = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses список статусов бронирований, которые занимают время в сетке
// Используется при проверке доступности слота
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusNoShow,
}

// NonBlockingStatuses список статусов, не влияющих на доступность
var NonBlockingStatuses = []BookingStatus{
	StatusCancelled,
}
