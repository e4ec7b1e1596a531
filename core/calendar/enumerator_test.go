package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nextDate(t *testing.T, e *Enumerator) string {
	t.Helper()
	d, err := e.Next()
	require.NoError(t, err)
	return d.Format(DateLayout)
}

func TestEnumeratorSimple(t *testing.T) {
	e := NewEnumerator(date(t, "2014-05-11"))
	assert.Equal(t, "2014-05-11", nextDate(t, e))
	assert.Equal(t, "2014-05-12", nextDate(t, e))
	assert.Equal(t, "2014-05-13", nextDate(t, e))
}

func TestEnumeratorSingleDaySkip(t *testing.T) {
	e := NewEnumerator(date(t, "2014-05-11"))
	p, err := NewSingleDay("2014-05-12")
	require.NoError(t, err)
	e.AddNonWorkingDay(p)

	assert.Equal(t, "2014-05-11", nextDate(t, e))
	assert.Equal(t, "2014-05-13", nextDate(t, e))
	assert.Equal(t, "2014-05-14", nextDate(t, e))

	// predicates may be added mid-sequence
	p2, err := NewSingleDay("2014-05-15")
	require.NoError(t, err)
	e.AddNonWorkingDay(p2)
	assert.Equal(t, "2014-05-16", nextDate(t, e))
	assert.Equal(t, "2014-05-17", nextDate(t, e))
}

func TestEnumeratorIntervalSkip(t *testing.T) {
	e := NewEnumerator(date(t, "2014-05-11"))
	p, err := NewDayInterval("2014-05-12", "2014-05-14")
	require.NoError(t, err)
	e.AddNonWorkingDay(p)

	assert.Equal(t, "2014-05-11", nextDate(t, e))
	assert.Equal(t, "2014-05-15", nextDate(t, e))
}

func TestEnumeratorWeekdaySkip(t *testing.T) {
	e := NewEnumerator(date(t, "2014-05-11"))
	e.AddNonWorkingDay(NewDayOfWeek("sunday"))

	want := []string{
		"2014-05-12", "2014-05-13", "2014-05-14", "2014-05-15",
		"2014-05-16", "2014-05-17", "2014-05-19",
	}
	for _, w := range want {
		assert.Equal(t, w, nextDate(t, e))
	}
}

func TestEnumeratorNeverReturnsNonWorkingDay(t *testing.T) {
	e := NewEnumerator(date(t, "2014-05-11"))
	p := NewDayOfWeek("saturday")
	e.AddNonWorkingDay(p)
	for i := 0; i < 60; i++ {
		d, err := e.Next()
		require.NoError(t, err)
		assert.False(t, p.Matches(d), "returned non-working day %s", d.Format(DateLayout))
	}
}

func TestEnumeratorNonTerminatingCalendar(t *testing.T) {
	e := NewEnumerator(date(t, "2014-05-11"))
	e.AddNonWorkingDay(EveryDay{})
	_, err := e.Next()
	assert.ErrorIs(t, err, ErrNonTerminatingCalendar)
}
