package domain

import "time"

// RecurrenceFrequency is the calendar unit a recurring blackout advances by
type RecurrenceFrequency string

const (
	FrequencyDaily   RecurrenceFrequency = "daily"
	FrequencyWeekly  RecurrenceFrequency = "weekly"
	FrequencyMonthly RecurrenceFrequency = "monthly"
)

// TerminationType determines how a recurrence stops
type TerminationType string

const (
	TerminationAfterCount TerminationType = "count"
	TerminationOnDate     TerminationType = "date"
)

// RecurrenceRule describes how a blackout window repeats.
// Interval is in units of Frequency and must be >= 1.
type RecurrenceRule struct {
	Frequency       RecurrenceFrequency
	Interval        int
	Termination     TerminationType
	Count           int       // used when Termination == TerminationAfterCount
	Until           time.Time // used when Termination == TerminationOnDate
	IncludeOriginal bool
}

// BlackoutWindow is a time range in which a professional is not bookable,
// possibly recurring. Owned by SalonService; read-only here.
type BlackoutWindow struct {
	ID             string
	ProfessionalID string
	Motive         string
	StartDateTime  time.Time
	EndDateTime    time.Time
	Recurrence     *RecurrenceRule
}

// Duration returns the length of the window.
// Every expanded occurrence preserves it.
func (w *BlackoutWindow) Duration() time.Duration {
	return w.EndDateTime.Sub(w.StartDateTime)
}

// IsRecurring returns true if the window carries a recurrence rule
func (w *BlackoutWindow) IsRecurring() bool {
	return w.Recurrence != nil
}

// BlackoutInstance is one concrete occurrence of a blackout window
type BlackoutInstance struct {
	BlackoutID     string
	ProfessionalID string
	Motive         string
	Start          time.Time
	End            time.Time
}
