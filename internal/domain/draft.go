package domain

import (
	"time"

	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

// BookingDraft is a fully validated, not-yet-submitted appointment
// selection. It is produced only when every field is set and the slot
// passed the advisory availability check, and it is handed to the
// checkout collaborator read-only. Never persisted by this service.
type BookingDraft struct {
	Client       Client
	Professional Professional
	Service      Service
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	Notes        *string
	Summary      string
}
