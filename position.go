package networth

import (
	"log"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fingest/networth/date"
)

// SplitEvent is a stock split taken from the activity ledger. All position
// deltas strictly before Effective are multiplied by the ratio so that pre-
// and post-split units are comparable.
type SplitEvent struct {
	Key       InstrumentKey
	Effective date.Date
	Num, Den  decimal.Decimal
}

// Ratio returns the split ratio as a float, e.g. 2 for a 2:1 split.
func (e SplitEvent) Ratio() float64 { return e.Num.Div(e.Den).InexactFloat64() }

// Matches reports whether the split applies to key. Splits are matched by
// ticker prefix: the broker occasionally suffixes the split's own ticker.
func (e SplitEvent) Matches(key InstrumentKey) bool {
	return strings.HasPrefix(key.Ticker(), e.Key.Ticker())
}

// Splits extracts split events from the activity ledger. A split row carries
// the instrument and the ratio in its Details, e.g. "NVDA/USD 2:1".
// Unreadable split rows are logged and skipped: a missed split skews one
// instrument, it does not structurally break the statement.
func (s *Statement) Splits() []SplitEvent {
	var events []SplitEvent
	for _, row := range s.Activity {
		if row.Type != TypeSplit {
			continue
		}
		ev, err := parseSplitDetails(string(row.Details))
		if err != nil {
			log.Printf("skipping split row on %s: %v", row.Date, err)
			continue
		}
		ev.Effective = row.Date
		events = append(events, ev)
	}
	return events
}

func parseSplitDetails(details string) (SplitEvent, error) {
	key, ratio, ok := strings.Cut(details, " ")
	if !ok {
		return SplitEvent{}, errSplitDetails(details)
	}
	num, den, ok := strings.Cut(ratio, ":")
	if !ok {
		return SplitEvent{}, errSplitDetails(details)
	}
	n, err := decimal.NewFromString(num)
	if err != nil {
		return SplitEvent{}, errSplitDetails(details)
	}
	d, err := decimal.NewFromString(den)
	if err != nil || d.IsZero() {
		return SplitEvent{}, errSplitDetails(details)
	}
	return SplitEvent{Key: InstrumentKey(key), Num: n, Den: d}, nil
}

type errSplitDetails string

func (e errSplitDetails) Error() string {
	return "invalid split details " + string(e) + ` want "TICKER/CUR N:M"`
}

// DailyPositions replays the open/close activity of each instrument into a
// dense daily series of cumulative shares held, from its first activity to
// today. Split events are applied retroactively on the raw daily deltas,
// before the running sum. Instruments with no activity are skipped.
func (s *Statement) DailyPositions(splits []SplitEvent) map[InstrumentKey]*date.History[float64] {
	return s.dailyPositionsUntil(splits, date.Today())
}

// dailyPositionsUntil is DailyPositions with a pinned calendar end, so tests
// don't depend on the wall clock.
func (s *Statement) dailyPositionsUntil(splits []SplitEvent, today date.Date) map[InstrumentKey]*date.History[float64] {
	// One daily delta point per instrument per day with activity.
	deltas := make(map[InstrumentKey]*date.History[float64])
	for _, row := range s.Activity {
		if row.Type != TypeOpenPosition && row.Type != TypePositionClosed {
			continue
		}
		h, ok := deltas[row.Details]
		if !ok {
			h = new(date.History[float64])
			deltas[row.Details] = h
		}
		h.AppendAdd(row.Date, row.Units.InexactFloat64())
	}

	positions := make(map[InstrumentKey]*date.History[float64], len(deltas))
	for key, h := range deltas {
		if h.Len() == 0 {
			continue
		}
		first, _ := h.First()
		rng := date.NewRange(first, today)
		if rng.Len() == 0 {
			continue
		}

		// Densify: days without activity have a zero delta, not a
		// forward-filled one.
		days := make([]date.Date, 0, rng.Len())
		daily := make([]float64, 0, rng.Len())
		for on := range rng.Days() {
			v, _ := h.Get(on)
			days = append(days, on)
			daily = append(daily, v)
		}

		adjustDeltas(days, daily, splits, key)

		series := new(date.History[float64])
		sum := 0.0
		for i, on := range days {
			sum += daily[i]
			series.Append(on, sum)
		}
		positions[key] = series
	}
	return positions
}

// adjustDeltas applies each matching split exactly once to the raw daily
// deltas, scaling every day strictly before the split's effective date.
// Splits are processed newest first so that consecutive splits compound.
func adjustDeltas(days []date.Date, deltas []float64, splits []SplitEvent, key InstrumentKey) {
	matching := make([]SplitEvent, 0, len(splits))
	for _, ev := range splits {
		if ev.Matches(key) {
			matching = append(matching, ev)
		}
	}
	sort.Slice(matching, func(i, j int) bool { return matching[j].Effective.Before(matching[i].Effective) })
	for _, ev := range matching {
		ratio := ev.Ratio()
		for i, on := range days {
			if !on.Before(ev.Effective) {
				break
			}
			deltas[i] *= ratio
		}
	}
}
