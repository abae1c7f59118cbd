package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/pkg/ptr"
)

var (
	testClient = domain.Client{ID: "cli-1", Name: "Анна Петрова"}
	testPro    = domain.Professional{ID: "pro-1", DisplayName: "Ирина", SiteID: "site-1"}
	testDate   = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
)

func testCatalog() []domain.Service {
	return []domain.Service{
		{ID: "svc-cut", Name: "Стрижка", DurationMinutes: 30, Price: 1500},
		{ID: "svc-color", LegacyCode: ptr.Ptr("COL-7"), Name: "Окрашивание", DurationMinutes: 120, Price: 6000},
	}
}

func advanceToDateTime(t *testing.T, m *Machine) {
	t.Helper()
	require.NoError(t, m.SelectClient(testClient))
	require.NoError(t, m.SelectProfessional(testPro, testCatalog()))
	require.NoError(t, m.SelectService(testCatalog()[0]))
}

func TestNew_StartsAtSelectingClient(t *testing.T) {
	m := New()
	assert.Equal(t, StateSelectingClient, m.State)
	assert.Nil(t, m.Client)
}

func TestHappyPath(t *testing.T) {
	m := New()

	require.NoError(t, m.SelectClient(testClient))
	assert.Equal(t, StateSelectingProfessional, m.State)

	require.NoError(t, m.SelectProfessional(testPro, testCatalog()))
	assert.Equal(t, StateSelectingService, m.State)

	require.NoError(t, m.SelectService(testCatalog()[0]))
	assert.Equal(t, StateSelectingDateTime, m.State)

	require.NoError(t, m.SelectSlot(testDate, "10:00"))
	assert.Equal(t, "10:30", m.EndTime.String(), "end time derives from service duration")

	require.NoError(t, m.EnterReview())
	assert.Equal(t, StateReviewAndProceed, m.State)
	assert.Contains(t, m.Summary, "Стрижка")
	assert.Contains(t, m.Summary, "10:00")

	draft, err := m.Submit()
	require.NoError(t, err)
	assert.Equal(t, StateSubmitted, m.State)
	assert.Equal(t, "cli-1", draft.Client.ID)
	assert.Equal(t, "10:30", draft.EndTime.String())
}

func TestEnterReview_RejectsMissingFields(t *testing.T) {
	m := New()

	err := m.EnterReview()

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"client", "professional", "service", "date", "time"}, vErr.MissingFields)
}

func TestEnterReview_NamesOnlyMissingFields(t *testing.T) {
	m := New()
	require.NoError(t, m.SelectClient(testClient))
	require.NoError(t, m.SelectProfessional(testPro, testCatalog()))

	err := m.EnterReview()

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"service", "date", "time"}, vErr.MissingFields)
}

func TestSubmit_OnlyFromReview(t *testing.T) {
	m := New()
	advanceToDateTime(t, m)

	_, err := m.Submit()
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSelectService_RejectsIneligible(t *testing.T) {
	m := New()
	require.NoError(t, m.SelectClient(testClient))

	pro := testPro
	pro.ExcludedServiceIDs = []string{"COL-7"}
	require.NoError(t, m.SelectProfessional(pro, testCatalog()))

	err := m.SelectService(testCatalog()[1]) // svc-color, legacy COL-7
	assert.ErrorIs(t, err, ErrServiceNotEligible)
}

func TestSelectProfessional_ClearsIneligibleService(t *testing.T) {
	m := New()
	require.NoError(t, m.SelectClient(testClient))
	require.NoError(t, m.SelectProfessional(testPro, testCatalog()))
	require.NoError(t, m.SelectService(testCatalog()[1])) // окрашивание
	require.NoError(t, m.SelectSlot(testDate, "10:00"))

	// Повторный выбор: новый профессионал не выполняет окрашивание
	pro2 := domain.Professional{ID: "pro-2", DisplayName: "Ольга", ExcludedServiceIDs: []string{"svc-color"}}
	require.NoError(t, m.SelectProfessional(pro2, testCatalog()))

	assert.Nil(t, m.Service, "ineligible service must be cleared")
	assert.True(t, m.Date.IsZero(), "slot depends on service and must be cleared")
	assert.True(t, m.StartTime.IsZero())
	assert.Equal(t, StateSelectingService, m.State)
}

func TestSelectProfessional_KeepsEligibleService(t *testing.T) {
	m := New()
	require.NoError(t, m.SelectClient(testClient))
	require.NoError(t, m.SelectProfessional(testPro, testCatalog()))
	require.NoError(t, m.SelectService(testCatalog()[0]))

	pro2 := domain.Professional{ID: "pro-2", DisplayName: "Ольга"}
	require.NoError(t, m.SelectProfessional(pro2, testCatalog()))

	require.NotNil(t, m.Service)
	assert.Equal(t, "svc-cut", m.Service.ID)
}

func TestSelectProfessional_NoEligibleServices(t *testing.T) {
	m := New()
	require.NoError(t, m.SelectClient(testClient))

	blocked := domain.Professional{ID: "pro-3", ExcludedServiceIDs: []string{"svc-cut", "svc-color"}}
	err := m.SelectProfessional(blocked, testCatalog())

	assert.ErrorIs(t, err, ErrNoEligibleServices)
}

func TestSelectService_ChangeClearsSlot(t *testing.T) {
	m := New()
	advanceToDateTime(t, m)
	require.NoError(t, m.SelectSlot(testDate, "10:00"))

	require.NoError(t, m.SelectService(testCatalog()[1]))

	assert.True(t, m.StartTime.IsZero(), "changing service invalidates the chosen slot")
}

func TestBack_WalksStates(t *testing.T) {
	m := New()
	advanceToDateTime(t, m)
	require.NoError(t, m.SelectSlot(testDate, "10:00"))
	require.NoError(t, m.EnterReview())

	require.NoError(t, m.Back())
	assert.Equal(t, StateSelectingDateTime, m.State)
	require.NoError(t, m.Back())
	assert.Equal(t, StateSelectingService, m.State)
	require.NoError(t, m.Back())
	assert.Equal(t, StateSelectingProfessional, m.State)
	require.NoError(t, m.Back())
	assert.Equal(t, StateSelectingClient, m.State)

	err := m.Back()
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel_TerminalAndFinal(t *testing.T) {
	m := New()
	require.NoError(t, m.SelectClient(testClient))

	require.NoError(t, m.Cancel())
	assert.Equal(t, StateCancelled, m.State)

	assert.ErrorIs(t, m.SelectClient(testClient), ErrTerminalState)
	assert.ErrorIs(t, m.Cancel(), ErrTerminalState)
	assert.ErrorIs(t, m.Back(), ErrTerminalState)
}

func TestSetNotes_Limit(t *testing.T) {
	m := New()

	long := make([]byte, domain.MaxNotesLength+1)
	for i := range long {
		long[i] = 'a'
	}
	err := m.SetNotes(ptr.Ptr(string(long)))
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, m.SetNotes(ptr.Ptr("после 19:00 не звонить")))
	assert.NotNil(t, m.Notes)
}
