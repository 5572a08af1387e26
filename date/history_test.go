package date

import "testing"

func TestAppendKeepsOrder(t *testing.T) {
	h := new(History[string])
	d1, v1 := MustParse("2025-07-01"), "25 Jul 1"
	d2, v2 := MustParse("2024-07-01"), "24 Jul 1"

	// Append two values in reverse chronological order and check that the
	// history stays sorted at every step.

	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(d1, v1)
	if h.Len() != 1 {
		t.Errorf("Append(d1, v1).Len() = %v want 1", h.Len())
	}

	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(d2, v2).Len() = %v want 2", h.Len())
	}

	if first, v := h.First(); first != d2 || v != v2 {
		t.Errorf("First() = %v %q want %v %q", first, v, d2, v2)
	}
	if last, v := h.Latest(); last != d1 || v != v1 {
		t.Errorf("Latest() = %v %q want %v %q", last, v, d1, v1)
	}

	// overwrite semantics
	h.Append(d1, "updated")
	if h.Len() != 2 {
		t.Errorf("Append(existing).Len() = %v want 2", h.Len())
	}
	if v, ok := h.Get(d1); !ok || v != "updated" {
		t.Errorf("Get(d1) = %q %v want %q true", v, ok, "updated")
	}
}

func TestAppendAddAccumulates(t *testing.T) {
	h := new(History[float64])
	on := MustParse("2024-01-01")
	h.AppendAdd(on, 10)
	h.AppendAdd(on, -4)
	if v, ok := h.Get(on); !ok || v != 6 {
		t.Errorf("Get() = %v %v want 6 true", v, ok)
	}
	if h.Len() != 1 {
		t.Errorf("Len() = %v want 1", h.Len())
	}
}

func TestValueAsOf(t *testing.T) {
	h := new(History[float64])
	h.Append(MustParse("2024-01-01"), 10)
	h.Append(MustParse("2024-01-05"), 20)

	if v, ok := h.ValueAsOf(MustParse("2023-12-31")); ok || v != 0 {
		t.Errorf("ValueAsOf(before) = %v %v want 0 false", v, ok)
	}
	if v, ok := h.ValueAsOf(MustParse("2024-01-01")); !ok || v != 10 {
		t.Errorf("ValueAsOf(first) = %v %v want 10 true", v, ok)
	}
	if v, ok := h.ValueAsOf(MustParse("2024-01-03")); !ok || v != 10 {
		t.Errorf("ValueAsOf(gap) = %v %v want 10 true", v, ok)
	}
	if v, ok := h.ValueAsOf(MustParse("2024-02-01")); !ok || v != 20 {
		t.Errorf("ValueAsOf(after) = %v %v want 20 true", v, ok)
	}
}

func TestDense(t *testing.T) {
	h := new(History[float64])
	h.Append(MustParse("2024-01-02"), 5)
	h.Append(MustParse("2024-01-04"), 7)

	got := h.Dense(NewRange(MustParse("2024-01-01"), MustParse("2024-01-05")))
	want := []float64{0, 5, 5, 7, 7}
	if len(got) != len(want) {
		t.Fatalf("Dense() len = %d want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Dense()[%d] = %v want %v", i, got[i], want[i])
		}
	}
}
