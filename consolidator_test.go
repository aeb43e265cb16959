package bars

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsolidatedEvent(t *testing.T) {
	var e ConsolidatedEvent
	assert.Nil(t, e.Consolidated())

	var got DataPoint
	calls := 0
	e.OnConsolidated(func(_ Consolidator, bar DataPoint) {
		got = bar
		calls++
	})

	bar := &TradeBar{Symbol: "SPY"}
	e.Emit(nil, bar)

	assert.Equal(t, 1, calls)
	assert.Same(t, DataPoint(bar), got)
	assert.Same(t, DataPoint(bar), e.Consolidated())

	// Reset чистит бар, но сохраняет подписчиков
	e.ResetEvent()
	assert.Nil(t, e.Consolidated())
	e.Emit(nil, bar)
	assert.Equal(t, 2, calls)

	// Dispose отписывает, повторный вызов безопасен
	e.Dispose()
	e.Dispose()
	e.Emit(nil, bar)
	assert.Equal(t, 2, calls)
}

type stubConsolidator struct {
	ConsolidatedEvent
	updates []DataPoint
	scans   []time.Time
	err     error
	resets  int
}

func (s *stubConsolidator) Update(d DataPoint) error {
	s.updates = append(s.updates, d)
	return s.err
}
func (s *stubConsolidator) Scan(now time.Time)      { s.scans = append(s.scans, now) }
func (s *stubConsolidator) Reset()                  { s.resets++; s.ResetEvent() }
func (s *stubConsolidator) WorkingData() DataPoint  { return nil }
func (s *stubConsolidator) InputType() reflect.Type { return nil }
func (s *stubConsolidator) OutputType() reflect.Type {
	return nil
}

func TestConsolidatorsFanOut(t *testing.T) {
	a := &stubConsolidator{}
	b := &stubConsolidator{err: ErrTypeMismatch}
	c := &stubConsolidator{}
	cs := Consolidators{a, b, c}

	bar := &TradeBar{Symbol: "SPY"}
	err := cs.UpdateAll(bar)

	// ошибка одного не мешает остальным
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.Len(t, a.updates, 1)
	assert.Len(t, c.updates, 1)

	now := time.Now()
	cs.ScanAll(now)
	assert.Equal(t, []time.Time{now}, a.scans)

	cs.ResetAll()
	assert.Equal(t, 1, b.resets)
}
