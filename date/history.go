package date

import (
	"iter"
	"slices"
)

// History stores a chronological series of values, each bound to one day.
// Days are unique and the series is kept sorted on insertion.
type History[T float32 | float64 | string] struct {
	days   []Date
	values []T
}

// Len returns the number of points in the history.
func (h *History[T]) Len() int { return len(h.days) }

// First returns the earliest day and value, or zero values when empty.
func (h *History[T]) First() (Date, T) {
	if len(h.days) == 0 {
		return Date{}, *new(T)
	}
	return h.days[0], h.values[0]
}

// Latest returns the most recent day and value, or zero values when empty.
func (h *History[T]) Latest() (Date, T) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, *new(T)
	}
	return h.days[last], h.values[last]
}

// search locates day in the sorted days slice.
func (h *History[T]) search(day Date) (int, bool) {
	return slices.BinarySearchFunc(h.days, day, Date.Compare)
}

// Append sets the value at 'on', overwriting any existing point that day.
func (h *History[T]) Append(on Date, v T) *History[T] {
	i, found := h.search(on)
	if found {
		h.values[i] = v
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, v)
	return h
}

// AppendAdd adds v to the value at 'on', creating the point if needed.
// Same-day deltas accumulate into a single daily point.
func (h *History[T]) AppendAdd(on Date, v T) *History[T] {
	i, found := h.search(on)
	if found {
		h.values[i] += v
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, v)
	return h
}

// Get returns the exact value at 'day', if any.
func (h *History[T]) Get(day Date) (T, bool) {
	if i, found := h.search(day); found {
		return h.values[i], true
	}
	return *new(T), false
}

// ValueAsOf returns the value on 'day', or the most recent value before it.
// Before the first point it returns the zero value and false.
func (h *History[T]) ValueAsOf(day Date) (T, bool) {
	i, found := h.search(day)
	if found {
		return h.values[i], true
	}
	if i == 0 {
		return *new(T), false
	}
	return h.values[i-1], true
}

// Values iterates over all day/value pairs in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Dense returns one value per day of r, forward-filling gaps with the last
// known value and using the zero value before the first point.
func (h *History[T]) Dense(r Range) []T {
	out := make([]T, 0, r.Len())
	for on := range r.Days() {
		v, _ := h.ValueAsOf(on)
		out = append(out, v)
	}
	return out
}

// Span returns the range from the first to the last day of the history.
// The returned range is empty when the history is empty.
func (h *History[T]) Span() Range {
	first, _ := h.First()
	last, _ := h.Latest()
	return Range{From: first, To: last}
}
