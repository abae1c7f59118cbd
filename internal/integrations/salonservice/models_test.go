package salonservice

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
)

func TestRawBooking_NormalizesBothTimeShapes(t *testing.T) {
	listShape := []byte(`{
		"id": "bkg-1", "clientId": "cli-1", "professionalId": "pro-1",
		"serviceId": "svc-1", "date": "2024-03-01",
		"startTime": "10:00", "endTime": "11:00", "status": "confirmed"
	}`)
	calendarShape := []byte(`{
		"id": "bkg-1", "clientId": "cli-1", "professionalId": "pro-1",
		"serviceId": "svc-1", "date": "2024-03-01",
		"start": "10:00", "end": "11:00", "status": "confirmed"
	}`)

	for _, payload := range [][]byte{listShape, calendarShape} {
		var raw rawBooking
		require.NoError(t, json.Unmarshal(payload, &raw))

		booking, err := raw.toDomain()
		require.NoError(t, err)
		assert.Equal(t, "10:00", booking.StartTime.String())
		assert.Equal(t, "11:00", booking.EndTime.String())
		assert.Equal(t, domain.StatusConfirmed, booking.Status)
	}
}

func TestRawService_NormalizesBothLegacyShapes(t *testing.T) {
	newShape := []byte(`{"id": "svc-1", "legacyReferenceCode": "CUT-1", "name": "Стрижка", "durationMinutes": 30, "price": 1500}`)
	oldShape := []byte(`{"id": "svc-1", "legacyCode": "CUT-1", "name": "Стрижка", "duration": 30, "price": 1500}`)

	for _, payload := range [][]byte{newShape, oldShape} {
		var raw rawService
		require.NoError(t, json.Unmarshal(payload, &raw))

		svc := raw.toDomain()
		require.NotNil(t, svc.LegacyCode)
		assert.Equal(t, "CUT-1", *svc.LegacyCode)
		assert.Equal(t, 30, svc.DurationMinutes)
	}
}

func TestRawRecurrence_CountTermination(t *testing.T) {
	payload := []byte(`{"type": "weekly", "interval": 2, "terminationType": "count", "terminationValue": 5, "includeOriginal": true}`)

	var raw rawRecurrence
	require.NoError(t, json.Unmarshal(payload, &raw))

	rule, err := raw.toDomain()
	require.NoError(t, err)
	assert.Equal(t, domain.FrequencyWeekly, rule.Frequency)
	assert.Equal(t, 2, rule.Interval)
	assert.Equal(t, domain.TerminationAfterCount, rule.Termination)
	assert.Equal(t, 5, rule.Count)
	assert.True(t, rule.IncludeOriginal)
}

func TestRawRecurrence_DateTermination(t *testing.T) {
	payload := []byte(`{"type": "monthly", "interval": 1, "terminationType": "date", "terminationValue": "2024-12-31T00:00:00Z", "includeOriginal": false}`)

	var raw rawRecurrence
	require.NoError(t, json.Unmarshal(payload, &raw))

	rule, err := raw.toDomain()
	require.NoError(t, err)
	assert.Equal(t, domain.TerminationOnDate, rule.Termination)
	assert.Equal(t, 2024, rule.Until.Year())
	assert.False(t, rule.IncludeOriginal)
}

func TestRawRecurrence_UnknownTermination(t *testing.T) {
	payload := []byte(`{"type": "daily", "interval": 1, "terminationType": "forever", "terminationValue": null}`)

	var raw rawRecurrence
	require.NoError(t, json.Unmarshal(payload, &raw))

	_, err := raw.toDomain()
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestRawBlackout_ToDomain(t *testing.T) {
	payload := []byte(`{
		"id": "blk-1", "professionalId": "pro-1", "motive": "отпуск",
		"startDateTime": "2024-03-01T09:00:00Z", "endDateTime": "2024-03-01T11:00:00Z"
	}`)

	var raw rawBlackout
	require.NoError(t, json.Unmarshal(payload, &raw))

	w, err := raw.toDomain()
	require.NoError(t, err)
	assert.False(t, w.IsRecurring())
	assert.Equal(t, "отпуск", w.Motive)
	assert.Equal(t, 9, w.StartDateTime.Hour())
}

func TestParseDateTime_AcceptsBothForms(t *testing.T) {
	withZone, err := parseDateTime("2024-03-01T09:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 9, withZone.Hour())

	withoutZone, err := parseDateTime("2024-03-01T09:00:00")
	require.NoError(t, err)
	assert.Equal(t, 9, withoutZone.Hour())

	_, err = parseDateTime("01.03.2024")
	assert.Error(t, err)
}
