package domain

import (
	"time"

	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking represents an appointment booked for a professional.
// Bookings are owned by SalonService; this service only reads
// per-view snapshots of them.
type Booking struct {
	ID             string
	ClientID       string
	ProfessionalID string
	ServiceID      string
	SiteID         string
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	Status         BookingStatus

	// Denormalized data for display
	ClientName   string
	ServiceName  string
	ServicePrice float64
	Notes        *string
}

// BlocksAvailability returns true if the booking occupies its time range.
// Cancelled bookings free their range; no-shows keep it occupied until
// the salon reconciles the day.
func (b *Booking) BlocksAvailability() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsTerminal returns true if the booking can no longer change state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled || b.Status == StatusNoShow
}

// BookingsFilter narrows booking snapshots fetched from SalonService
type BookingsFilter struct {
	SiteID         *string    // Filter by site (optional)
	ProfessionalID *string    // Filter by professional (optional)
	Date           *time.Time // Filter by date (optional)
}
