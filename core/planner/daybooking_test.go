package planner

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "want %s got %s", want, got)
}

func newTestDay(capacity string) *DayBooking {
	date := time.Date(2014, 5, 11, 0, 0, 0, 0, time.UTC)
	return NewDayBooking(date, dec(capacity))
}

func TestDayBookingEmpty(t *testing.T) {
	db := newTestDay("2")
	assertDec(t, "2", db.Available())
	assertDec(t, "0", db.Booked())
	assert.False(t, db.Full())
	assert.Empty(t, db.Bookings())
}

func TestDayBookingWholeTasksPartialDay(t *testing.T) {
	db := newTestDay("2")

	t1 := NewTask("t1", dec("0.3"))
	assertDec(t, "0", db.Book(t1, t1.Effort))
	assertDec(t, "1.7", db.Available())
	assert.False(t, db.Full())
	assert.Len(t, db.Bookings(), 1)

	t2 := NewTask("t2", dec("0.5"))
	assertDec(t, "0", db.Book(t2, t2.Effort))
	assertDec(t, "1.2", db.Available())
	assert.False(t, db.Full())
	assert.Len(t, db.Bookings(), 2)
}

func TestDayBookingWholeTaskFillsDayExactly(t *testing.T) {
	db := newTestDay("2")
	t1 := NewTask("t1", dec("2"))
	assertDec(t, "0", db.Book(t1, t1.Effort))
	assertDec(t, "0", db.Available())
	assert.True(t, db.Full())
	assert.Len(t, db.Bookings(), 1)
}

func TestDayBookingPartialTaskFillsDay(t *testing.T) {
	db := newTestDay("2")
	t1 := NewTask("t1", dec("2.6"))
	assertDec(t, "0.6", db.Book(t1, t1.Effort))
	assertDec(t, "0", db.Available())
	assert.True(t, db.Full())
	assert.Len(t, db.Bookings(), 1)
	assertDec(t, "2", db.Bookings()[0].Hours)
}

func TestDayBookingZeroEffortOnEmptyDay(t *testing.T) {
	db := newTestDay("2")
	t1 := NewTask("t1", dec("0"))
	assertDec(t, "0", db.Book(t1, t1.Effort))
	assertDec(t, "2", db.Available())
	assert.False(t, db.Full())
	assert.Len(t, db.Bookings(), 1)
}

func TestDayBookingZeroEffortOnFullDay(t *testing.T) {
	db := newTestDay("2")
	t1 := NewTask("t1", db.Available())
	assertDec(t, "0", db.Book(t1, t1.Effort))
	assert.True(t, db.Full())

	t2 := NewTask("t2", dec("0"))
	assertDec(t, "0", db.Book(t2, t2.Effort))
	assertDec(t, "0", db.Available())
	assertDec(t, "2", db.Booked())
	assert.True(t, db.Full())
	assert.Len(t, db.Bookings(), 2)
}

func TestDayBookingZeroCapacityDayIsFull(t *testing.T) {
	db := newTestDay("0")
	assert.True(t, db.Full())
	t1 := NewTask("t1", dec("1"))
	assertDec(t, "1", db.Book(t1, t1.Effort))
	assertDec(t, "0", db.Bookings()[0].Hours)
}

func TestTaskAccumulatesBookings(t *testing.T) {
	t1 := NewTask("t1", dec("1"))
	assert.Empty(t, t1.Bookings())

	db := newTestDay("0.5")
	remaining := db.Book(t1, t1.Effort)
	assert.Len(t, t1.Bookings(), 1)

	db2 := newTestDay("2")
	db2.Book(t1, remaining)
	assert.Len(t, t1.Bookings(), 2)

	first, ok := t1.FirstDay()
	assert.True(t, ok)
	last, ok := t1.LastDay()
	assert.True(t, ok)
	assert.Equal(t, db.Date, first)
	assert.Equal(t, db2.Date, last)
}

func TestTaskUnplannedHasNoDays(t *testing.T) {
	t1 := NewTask("t1", dec("1"))
	_, ok := t1.FirstDay()
	assert.False(t, ok)
	_, ok = t1.LastDay()
	assert.False(t, ok)
}
