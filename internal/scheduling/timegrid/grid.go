package timegrid

import (
	"fmt"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
	"github.com/m04kA/SLN-SchedulingService/pkg/types"
)

// Grid описывает дискретную сетку рабочего дня: границы и шаг.
// Все вычисления слотов и позиций выполняются относительно сетки.
type Grid struct {
	Start              types.TimeString
	End                types.TimeString
	GranularityMinutes int
}

// Rect прямоугольник ячейки бронирования в координатах сетки
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// New создает сетку с валидацией границ и шага
func New(start, end types.TimeString, granularityMinutes int) (Grid, error) {
	if err := start.Validate(); err != nil {
		return Grid{}, fmt.Errorf("%w: start: %v", ErrInvalidBounds, err)
	}
	if err := end.Validate(); err != nil {
		return Grid{}, fmt.Errorf("%w: end: %v", ErrInvalidBounds, err)
	}
	if !start.IsBefore(end) {
		return Grid{}, fmt.Errorf("%w: %s..%s", ErrInvalidBounds, start, end)
	}
	if granularityMinutes < domain.MinGranularityMinutes || granularityMinutes > domain.MaxGranularityMinutes {
		return Grid{}, fmt.Errorf("%w: %d minutes", ErrInvalidGranularity, granularityMinutes)
	}
	return Grid{Start: start, End: end, GranularityMinutes: granularityMinutes}, nil
}

// Default возвращает сетку с дефолтными параметрами (05:00-19:30, шаг 30 минут)
func Default() Grid {
	return Grid{
		Start:              domain.DefaultGridStart,
		End:                domain.DefaultGridEnd,
		GranularityMinutes: domain.DefaultGranularityMinutes,
	}
}

// SlotsForDay генерирует метки всех строк сетки с фиксированным шагом,
// включая последнюю метку на границе End.
// Для дефолтной сетки это ровно 30 меток: 05:00, 05:30, ..., 19:30.
func (g Grid) SlotsForDay() []types.TimeString {
	slots := make([]types.TimeString, 0, g.End.DiffMinutes(g.Start)/g.GranularityMinutes+1)

	current := g.Start
	for !current.IsAfter(g.End) {
		slots = append(slots, current)

		next, err := current.AddMinutes(g.GranularityMinutes)
		if err != nil {
			// Следующий шаг вышел за пределы суток - сетка закончилась
			break
		}
		current = next
	}

	return slots
}

// BlockCountFor возвращает количество блоков сетки, занимаемых услугой:
// ceil(duration / granularity). Услуга на 90 минут при шаге 30 занимает 3 блока.
func (g Grid) BlockCountFor(durationMinutes int) int {
	return BlockCountFor(durationMinutes, g.GranularityMinutes)
}

// BlockCountFor вычисляет ceil(duration / granularity) без привязки к сетке
func BlockCountFor(durationMinutes, granularityMinutes int) int {
	if durationMinutes <= 0 || granularityMinutes <= 0 {
		return 0
	}
	return (durationMinutes + granularityMinutes - 1) / granularityMinutes
}

// RowIndexOf возвращает индекс строки сетки для указанного времени.
// Время вне полуинтервала [Start, End) отклоняется с ErrOutOfRange.
func (g Grid) RowIndexOf(t types.TimeString) (int, error) {
	if err := t.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrOutOfRange, err)
	}
	if t.IsBefore(g.Start) || !t.IsBefore(g.End) {
		return 0, fmt.Errorf("%w: %s not in [%s, %s)", ErrOutOfRange, t, g.Start, g.End)
	}
	return t.DiffMinutes(g.Start) / g.GranularityMinutes, nil
}

// PositionOf отображает время начала и колонку профессионала в прямоугольник
// ячейки. Высота определяется количеством блоков услуги.
func (g Grid) PositionOf(start types.TimeString, columnIndex, durationMinutes, rowHeight, columnWidth int) (Rect, error) {
	row, err := g.RowIndexOf(start)
	if err != nil {
		return Rect{}, err
	}
	if columnIndex < 0 {
		return Rect{}, fmt.Errorf("%w: negative column index %d", ErrOutOfRange, columnIndex)
	}

	return Rect{
		X:      columnIndex * columnWidth,
		Y:      row * rowHeight,
		Width:  columnWidth,
		Height: g.BlockCountFor(durationMinutes) * rowHeight,
	}, nil
}
