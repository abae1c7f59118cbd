package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
)

func window(start, end time.Time, rule *domain.RecurrenceRule) domain.BlackoutWindow {
	return domain.BlackoutWindow{
		ID:             "blk-1",
		ProfessionalID: "pro-1",
		Motive:         "обучение",
		StartDateTime:  start,
		EndDateTime:    end,
		Recurrence:     rule,
	}
}

func TestExpand_NonRecurring(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC)

	instances, err := Expand(window(start, end, nil))
	require.NoError(t, err)

	require.Len(t, instances, 1)
	assert.Equal(t, start, instances[0].Start)
	assert.Equal(t, end, instances[0].End)
	assert.Equal(t, "blk-1", instances[0].BlackoutID)
}

func TestExpand_BiweeklyAfterCount(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	instances, err := Expand(window(start, end, &domain.RecurrenceRule{
		Frequency:       domain.FrequencyWeekly,
		Interval:        2,
		Termination:     domain.TerminationAfterCount,
		Count:           5,
		IncludeOriginal: true,
	}))
	require.NoError(t, err)

	require.Len(t, instances, 5)
	wantDates := []string{"2024-01-01", "2024-01-15", "2024-01-29", "2024-02-12", "2024-02-26"}
	for i, inst := range instances {
		assert.Equal(t, wantDates[i], inst.Start.Format(domain.DateFormat))
		assert.Equal(t, 2*time.Hour, inst.End.Sub(inst.Start), "duration must be preserved")
	}
}

func TestExpand_ExcludesOriginal(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	instances, err := Expand(window(start, end, &domain.RecurrenceRule{
		Frequency:       domain.FrequencyDaily,
		Interval:        1,
		Termination:     domain.TerminationAfterCount,
		Count:           3,
		IncludeOriginal: false,
	}))
	require.NoError(t, err)

	require.Len(t, instances, 3)
	assert.Equal(t, "2024-01-02", instances[0].Start.Format(domain.DateFormat))
	assert.Equal(t, "2024-01-04", instances[2].Start.Format(domain.DateFormat))
}

func TestExpand_OnDateTermination(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	instances, err := Expand(window(start, end, &domain.RecurrenceRule{
		Frequency:       domain.FrequencyWeekly,
		Interval:        1,
		Termination:     domain.TerminationOnDate,
		Until:           time.Date(2024, 1, 22, 10, 0, 0, 0, time.UTC),
		IncludeOriginal: true,
	}))
	require.NoError(t, err)

	// 01-01, 01-08, 01-15, 01-22: вхождение с start == until включается
	require.Len(t, instances, 4)
	assert.Equal(t, "2024-01-22", instances[3].Start.Format(domain.DateFormat))
}

func TestExpand_MonthlyClampsDayOfMonth(t *testing.T) {
	start := time.Date(2024, 1, 31, 14, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	instances, err := Expand(window(start, end, &domain.RecurrenceRule{
		Frequency:       domain.FrequencyMonthly,
		Interval:        1,
		Termination:     domain.TerminationAfterCount,
		Count:           4,
		IncludeOriginal: true,
	}))
	require.NoError(t, err)

	require.Len(t, instances, 4)
	assert.Equal(t, "2024-01-31", instances[0].Start.Format(domain.DateFormat))
	assert.Equal(t, "2024-02-29", instances[1].Start.Format(domain.DateFormat))
	assert.Equal(t, "2024-03-31", instances[2].Start.Format(domain.DateFormat))
	assert.Equal(t, "2024-04-30", instances[3].Start.Format(domain.DateFormat))

	for _, inst := range instances {
		assert.Equal(t, 14, inst.Start.Hour(), "clock time must be preserved")
	}
}

func TestIterator_Restartable(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	it, err := NewIterator(window(start, start.Add(time.Hour), &domain.RecurrenceRule{
		Frequency:       domain.FrequencyDaily,
		Interval:        1,
		Termination:     domain.TerminationAfterCount,
		Count:           2,
		IncludeOriginal: true,
	}))
	require.NoError(t, err)

	first, ok := it.Next()
	require.True(t, ok)
	_, ok = it.Next()
	require.True(t, ok)
	_, ok = it.Next()
	require.False(t, ok)

	it.Reset()
	restarted, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, first, restarted)
}

func TestExpandWithin_FiltersByDateWindow(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	w := window(start, start.Add(time.Hour), &domain.RecurrenceRule{
		Frequency:       domain.FrequencyWeekly,
		Interval:        1,
		Termination:     domain.TerminationAfterCount,
		Count:           10,
		IncludeOriginal: true,
	})

	from := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 23, 0, 0, 0, 0, time.UTC)

	instances, err := ExpandWithin(w, from, to)
	require.NoError(t, err)

	require.Len(t, instances, 3)
	assert.Equal(t, "2024-01-08", instances[0].Start.Format(domain.DateFormat))
	assert.Equal(t, "2024-01-22", instances[2].Start.Format(domain.DateFormat))
}

func TestExpand_OnDateCapped(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	instances, err := Expand(window(start, start.Add(time.Hour), &domain.RecurrenceRule{
		Frequency:       domain.FrequencyDaily,
		Interval:        1,
		Termination:     domain.TerminationOnDate,
		Until:           time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC),
		IncludeOriginal: true,
	}))
	require.NoError(t, err)

	assert.Len(t, instances, maxOccurrences)
}

func TestNewIterator_Validation(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	_, err := NewIterator(window(start, start, nil))
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = NewIterator(window(start, start.Add(time.Hour), &domain.RecurrenceRule{
		Frequency:   domain.FrequencyWeekly,
		Interval:    0,
		Termination: domain.TerminationAfterCount,
		Count:       3,
	}))
	assert.ErrorIs(t, err, ErrInvalidRule)

	_, err = NewIterator(window(start, start.Add(time.Hour), &domain.RecurrenceRule{
		Frequency:   "yearly",
		Interval:    1,
		Termination: domain.TerminationAfterCount,
		Count:       3,
	}))
	assert.ErrorIs(t, err, ErrInvalidRule)
}
