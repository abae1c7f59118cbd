package recurrence

import (
	"fmt"
	"time"

	"github.com/m04kA/SLN-SchedulingService/internal/domain"
)

// maxOccurrences ограничивает раскрытие правил с завершением по дате,
// чтобы последовательность оставалась конечной даже при вырожденном правиле
const maxOccurrences = 1000

// Iterator лениво раскрывает правило повторения окна недоступности
// в конкретные экземпляры. Перезапускается через Reset.
type Iterator struct {
	window   domain.BlackoutWindow
	duration time.Duration

	k       int // номер вычисляемого вхождения, k=0 - исходное окно
	emitted int
	done    bool
}

// NewIterator создает итератор по экземплярам окна.
// Окно без правила повторения дает ровно один экземпляр - исходный.
func NewIterator(w domain.BlackoutWindow) (*Iterator, error) {
	if !w.StartDateTime.Before(w.EndDateTime) {
		return nil, fmt.Errorf("%w: %s..%s", ErrInvalidWindow,
			w.StartDateTime.Format(time.RFC3339), w.EndDateTime.Format(time.RFC3339))
	}
	if w.Recurrence != nil {
		if err := validateRule(w.Recurrence); err != nil {
			return nil, err
		}
	}

	it := &Iterator{window: w, duration: w.Duration()}
	it.Reset()
	return it, nil
}

// Reset возвращает итератор к первому экземпляру
func (it *Iterator) Reset() {
	it.emitted = 0
	it.done = false
	it.k = 0
	if rule := it.window.Recurrence; rule != nil && !rule.IncludeOriginal {
		// Исходное окно не входит в последовательность
		it.k = 1
	}
}

// Next возвращает следующий экземпляр. Второе значение false означает,
// что последовательность закончилась.
func (it *Iterator) Next() (domain.BlackoutInstance, bool) {
	if it.done {
		return domain.BlackoutInstance{}, false
	}

	rule := it.window.Recurrence

	// Окно без правила: единственный экземпляр - исходный
	if rule == nil {
		it.done = true
		return it.instanceAt(it.window.StartDateTime), true
	}

	start, err := occurrenceStart(it.window.StartDateTime, rule.Frequency, rule.Interval, it.k)
	if err != nil {
		it.done = true
		return domain.BlackoutInstance{}, false
	}

	switch rule.Termination {
	case domain.TerminationAfterCount:
		if it.emitted >= rule.Count {
			it.done = true
			return domain.BlackoutInstance{}, false
		}
	case domain.TerminationOnDate:
		if start.After(rule.Until) || it.emitted >= maxOccurrences {
			it.done = true
			return domain.BlackoutInstance{}, false
		}
	}

	it.k++
	it.emitted++
	return it.instanceAt(start), true
}

func (it *Iterator) instanceAt(start time.Time) domain.BlackoutInstance {
	return domain.BlackoutInstance{
		BlackoutID:     it.window.ID,
		ProfessionalID: it.window.ProfessionalID,
		Motive:         it.window.Motive,
		Start:          start,
		End:            start.Add(it.duration),
	}
}

// Expand раскрывает окно недоступности в полный список экземпляров
func Expand(w domain.BlackoutWindow) ([]domain.BlackoutInstance, error) {
	it, err := NewIterator(w)
	if err != nil {
		return nil, err
	}

	instances := make([]domain.BlackoutInstance, 0)
	for inst, ok := it.Next(); ok; inst, ok = it.Next() {
		instances = append(instances, inst)
	}
	return instances, nil
}

// ExpandWithin раскрывает окно и оставляет только экземпляры,
// пересекающие полуинтервал [from, to)
func ExpandWithin(w domain.BlackoutWindow, from, to time.Time) ([]domain.BlackoutInstance, error) {
	all, err := Expand(w)
	if err != nil {
		return nil, err
	}

	instances := make([]domain.BlackoutInstance, 0, len(all))
	for _, inst := range all {
		if inst.Start.Before(to) && inst.End.After(from) {
			instances = append(instances, inst)
		}
	}
	return instances, nil
}

// ExpandAllWithin раскрывает набор окон в единый список экземпляров окна дат
func ExpandAllWithin(windows []domain.BlackoutWindow, from, to time.Time) ([]domain.BlackoutInstance, error) {
	instances := make([]domain.BlackoutInstance, 0)
	for _, w := range windows {
		expanded, err := ExpandWithin(w, from, to)
		if err != nil {
			return nil, err
		}
		instances = append(instances, expanded...)
	}
	return instances, nil
}

func validateRule(rule *domain.RecurrenceRule) error {
	switch rule.Frequency {
	case domain.FrequencyDaily, domain.FrequencyWeekly, domain.FrequencyMonthly:
	default:
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidRule, rule.Frequency)
	}

	if rule.Interval < 1 {
		return fmt.Errorf("%w: interval must be >= 1, got %d", ErrInvalidRule, rule.Interval)
	}

	switch rule.Termination {
	case domain.TerminationAfterCount:
		if rule.Count < 1 {
			return fmt.Errorf("%w: count must be >= 1, got %d", ErrInvalidRule, rule.Count)
		}
	case domain.TerminationOnDate:
		if rule.Until.IsZero() {
			return fmt.Errorf("%w: termination date is required", ErrInvalidRule)
		}
	default:
		return fmt.Errorf("%w: unknown termination type %q", ErrInvalidRule, rule.Termination)
	}

	return nil
}

// occurrenceStart вычисляет начало k-го вхождения, сдвигая базовое время
// на k*interval единиц частоты правила
func occurrenceStart(base time.Time, freq domain.RecurrenceFrequency, interval, k int) (time.Time, error) {
	steps := k * interval

	switch freq {
	case domain.FrequencyDaily:
		return base.AddDate(0, 0, steps), nil
	case domain.FrequencyWeekly:
		return base.AddDate(0, 0, 7*steps), nil
	case domain.FrequencyMonthly:
		return addMonthsClamped(base, steps), nil
	default:
		return time.Time{}, fmt.Errorf("%w: unknown frequency %q", ErrInvalidRule, freq)
	}
}

// addMonthsClamped сдвигает дату на months месяцев, прижимая число месяца
// к последнему дню целевого месяца: 31 января + 1 месяц = 29 февраля (2024).
// time.AddDate здесь не подходит - он переносит переполнение в следующий месяц.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	// Нормализуем целевой месяц через дату первого числа
	first := time.Date(year, month, 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	targetYear, targetMonth := first.Year(), first.Month()

	if last := daysInMonth(targetYear, targetMonth); day > last {
		day = last
	}

	return time.Date(targetYear, targetMonth, day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
