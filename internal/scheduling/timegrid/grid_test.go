package timegrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

func TestSlotsForDay_DefaultGrid(t *testing.T) {
	grid := Default()

	slots := grid.SlotsForDay()

	require.Len(t, slots, 30)
	assert.Equal(t, types.MustTimeString("05:00"), slots[0])
	assert.Equal(t, types.MustTimeString("05:30"), slots[1])
	assert.Equal(t, types.MustTimeString("19:30"), slots[len(slots)-1])
}

func TestSlotsForDay_CustomGranularity(t *testing.T) {
	grid, err := New("09:00", "12:00", 60)
	require.NoError(t, err)

	slots := grid.SlotsForDay()

	assert.Equal(t, []types.TimeString{"09:00", "10:00", "11:00", "12:00"}, slots)
}

func TestBlockCountFor(t *testing.T) {
	tests := []struct {
		name        string
		duration    int
		granularity int
		want        int
	}{
		{"exact multiple", 90, 30, 3},
		{"rounds up", 91, 30, 4},
		{"single block", 30, 30, 1},
		{"shorter than block", 15, 30, 1},
		{"zero duration", 0, 30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BlockCountFor(tt.duration, tt.granularity))
		})
	}
}

func TestPositionOf(t *testing.T) {
	grid := Default()

	rect, err := grid.PositionOf("06:00", 2, 90, 40, 120)
	require.NoError(t, err)

	// 06:00 - третья строка сетки (индекс 2), услуга на 90 минут занимает 3 блока
	assert.Equal(t, Rect{X: 240, Y: 80, Width: 120, Height: 120}, rect)
}

func TestPositionOf_RejectsOutsideOperatingWindow(t *testing.T) {
	grid := Default()

	tests := []struct {
		name  string
		start types.TimeString
	}{
		{"before opening", "04:30"},
		{"at closing bound", "19:30"},
		{"after closing", "21:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := grid.PositionOf(tt.start, 0, 30, 40, 120)
			assert.ErrorIs(t, err, ErrOutOfRange)
		})
	}
}

func TestNew_Validation(t *testing.T) {
	_, err := New("19:00", "05:00", 30)
	assert.ErrorIs(t, err, ErrInvalidBounds)

	_, err = New("05:00", "19:30", 0)
	assert.ErrorIs(t, err, ErrInvalidGranularity)

	_, err = New("5am", "19:30", 30)
	assert.ErrorIs(t, err, ErrInvalidBounds)
}
