package select_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/internal/infra/sessionstore"
	"github.com/m04kA/SLN-SchedulingService/internal/scheduling/availability"
	"github.com/m04kA/SLN-SchedulingService/internal/scheduling/timegrid"
	"github.com/m04kA/SLN-SchedulingService/internal/workflow"
	"github.com/m04kA/SLN-SchedulingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type salonStub struct {
	bookings  []*domain.Booking
	blackouts []domain.BlackoutWindow
}

func (s *salonStub) ListBookings(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	return s.bookings, nil
}

func (s *salonStub) ListBlackouts(ctx context.Context, professionalID string) ([]domain.BlackoutWindow, error) {
	return s.blackouts, nil
}

var slotDate = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

// sessionAtDateTime сохраняет в store сессию, дошедшую до выбора времени
func sessionAtDateTime(t *testing.T, store *sessionstore.MemoryStore) *sessionstore.Session {
	t.Helper()

	machine := workflow.New()
	require.NoError(t, machine.SelectClient(domain.Client{ID: "cli-1", Name: "Анна"}))

	professional := domain.Professional{ID: "pro-1", DisplayName: "Мария", SiteID: "site-1"}
	catalog := []domain.Service{
		{ID: "svc-color", Name: "Окрашивание", DurationMinutes: 90, Price: 4500},
	}
	require.NoError(t, machine.SelectProfessional(professional, catalog))
	require.NoError(t, machine.SelectService(catalog[0]))

	session := &sessionstore.Session{
		ID:      "sess-1",
		UserID:  "user-1",
		SiteID:  "site-1",
		Machine: machine,
	}
	require.NoError(t, store.Save(context.Background(), session))
	return session
}

func TestExecute_MovesSessionToReview(t *testing.T) {
	store := sessionstore.NewMemoryStore(30 * time.Minute)
	sessionAtDateTime(t, store)
	uc := NewUseCase(store, &salonStub{}, timegrid.Default(), nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		SessionID: "sess-1",
		UserID:    "user-1",
		Date:      slotDate,
		StartTime: "10:00",
	})
	require.NoError(t, err)

	assert.Equal(t, string(workflow.StateReviewAndProceed), resp.State)
	assert.Equal(t, "10:00", string(resp.StartTime))
	// Время окончания выведено из длительности услуги (90 минут)
	assert.Equal(t, "11:30", string(resp.EndTime))
	assert.Contains(t, resp.Summary, "Окрашивание")

	saved, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, workflow.StateReviewAndProceed, saved.Machine.State)
}

func TestExecute_BookingConflict(t *testing.T) {
	store := sessionstore.NewMemoryStore(30 * time.Minute)
	sessionAtDateTime(t, store)

	salon := &salonStub{
		bookings: []*domain.Booking{
			{
				ID:             "bkg-1",
				ProfessionalID: "pro-1",
				Date:           slotDate,
				StartTime:      "11:00",
				EndTime:        "12:00",
				Status:         domain.StatusConfirmed,
			},
		},
	}
	uc := NewUseCase(store, salon, timegrid.Default(), nil, nopLogger{})

	// Услуга 90 минут: [10:00, 11:30) пересекается с [11:00, 12:00)
	_, err := uc.Execute(context.Background(), &Request{
		SessionID: "sess-1",
		UserID:    "user-1",
		Date:      slotDate,
		StartTime: "10:00",
	})

	var conflictErr *SlotConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, availability.KindBooking, conflictErr.Conflict.Kind)
	assert.Equal(t, "bkg-1", conflictErr.Conflict.BookingID)

	// Сессия не сдвинулась: выбор времени можно повторить
	saved, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, workflow.StateSelectingDateTime, saved.Machine.State)
}

func TestExecute_TouchingBookingIsFree(t *testing.T) {
	store := sessionstore.NewMemoryStore(30 * time.Minute)
	sessionAtDateTime(t, store)

	salon := &salonStub{
		bookings: []*domain.Booking{
			{
				ID:             "bkg-1",
				ProfessionalID: "pro-1",
				Date:           slotDate,
				StartTime:      "11:30",
				EndTime:        "12:30",
				Status:         domain.StatusConfirmed,
			},
		},
	}
	uc := NewUseCase(store, salon, timegrid.Default(), nil, nopLogger{})

	// [10:00, 11:30) граничит с [11:30, 12:30): конфликта нет
	resp, err := uc.Execute(context.Background(), &Request{
		SessionID: "sess-1",
		UserID:    "user-1",
		Date:      slotDate,
		StartTime: "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, string(workflow.StateReviewAndProceed), resp.State)
}

func TestExecute_StartBeforeOperatingWindow(t *testing.T) {
	store := sessionstore.NewMemoryStore(30 * time.Minute)
	sessionAtDateTime(t, store)
	uc := NewUseCase(store, &salonStub{}, timegrid.Default(), nil, nopLogger{})

	// 03:00 раньше начала рабочего дня 05:00
	_, err := uc.Execute(context.Background(), &Request{
		SessionID: "sess-1",
		UserID:    "user-1",
		Date:      slotDate,
		StartTime: "03:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Сессия осталась на шаге выбора времени
	saved, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, workflow.StateSelectingDateTime, saved.Machine.State)
}

func TestExecute_EndPastOperatingWindow(t *testing.T) {
	store := sessionstore.NewMemoryStore(30 * time.Minute)
	sessionAtDateTime(t, store)
	uc := NewUseCase(store, &salonStub{}, timegrid.Default(), nil, nopLogger{})

	// Услуга 90 минут: [19:00, 20:30) выходит за границу 19:30
	_, err := uc.Execute(context.Background(), &Request{
		SessionID: "sess-1",
		UserID:    "user-1",
		Date:      slotDate,
		StartTime: "19:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_EndAtOperatingBound(t *testing.T) {
	store := sessionstore.NewMemoryStore(30 * time.Minute)
	sessionAtDateTime(t, store)
	uc := NewUseCase(store, &salonStub{}, timegrid.Default(), nil, nopLogger{})

	// [18:00, 19:30) заканчивается ровно на границе рабочего дня
	resp, err := uc.Execute(context.Background(), &Request{
		SessionID: "sess-1",
		UserID:    "user-1",
		Date:      slotDate,
		StartTime: "18:00",
	})
	require.NoError(t, err)
	assert.Equal(t, string(workflow.StateReviewAndProceed), resp.State)
	assert.Equal(t, "19:30", string(resp.EndTime))
}

func TestExecute_BlackoutConflict(t *testing.T) {
	store := sessionstore.NewMemoryStore(30 * time.Minute)
	sessionAtDateTime(t, store)

	salon := &salonStub{
		blackouts: []domain.BlackoutWindow{
			{
				ID:             "blk-1",
				ProfessionalID: "pro-1",
				Motive:         "отпуск",
				StartDateTime:  time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
				EndDateTime:    time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC),
			},
		},
	}
	uc := NewUseCase(store, salon, timegrid.Default(), nil, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		SessionID: "sess-1",
		UserID:    "user-1",
		Date:      slotDate,
		StartTime: "10:00",
	})

	var conflictErr *SlotConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, availability.KindBlackout, conflictErr.Conflict.Kind)
	assert.Equal(t, "отпуск", conflictErr.Conflict.Motive)
}

func TestExecute_NotesStored(t *testing.T) {
	store := sessionstore.NewMemoryStore(30 * time.Minute)
	sessionAtDateTime(t, store)
	uc := NewUseCase(store, &salonStub{}, timegrid.Default(), nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		SessionID: "sess-1",
		UserID:    "user-1",
		Date:      slotDate,
		StartTime: "10:00",
		Notes:     ptr.Ptr("аллергия на аммиак"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "аллергия на аммиак", *resp.Notes)
}

func TestExecute_MissingSelections(t *testing.T) {
	store := sessionstore.NewMemoryStore(30 * time.Minute)
	session := &sessionstore.Session{
		ID:      "sess-empty",
		UserID:  "user-1",
		SiteID:  "site-1",
		Machine: workflow.New(),
	}
	require.NoError(t, store.Save(context.Background(), session))
	uc := NewUseCase(store, &salonStub{}, timegrid.Default(), nil, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		SessionID: "sess-empty",
		UserID:    "user-1",
		Date:      slotDate,
		StartTime: "10:00",
	})

	var validationErr *workflow.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.MissingFields, "client")
	assert.Contains(t, validationErr.MissingFields, "service")
}

func TestExecute_AccessDenied(t *testing.T) {
	store := sessionstore.NewMemoryStore(30 * time.Minute)
	sessionAtDateTime(t, store)
	uc := NewUseCase(store, &salonStub{}, timegrid.Default(), nil, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		SessionID: "sess-1",
		UserID:    "user-2",
		Date:      slotDate,
		StartTime: "10:00",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_SessionNotFound(t *testing.T) {
	store := sessionstore.NewMemoryStore(30 * time.Minute)
	uc := NewUseCase(store, &salonStub{}, timegrid.Default(), nil, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		SessionID: "sess-404",
		UserID:    "user-1",
		Date:      slotDate,
		StartTime: "10:00",
	})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
