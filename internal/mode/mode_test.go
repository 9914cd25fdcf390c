package mode

import (
	"testing"

	"github.com/phinze/badgeclock/internal/input"
	"github.com/phinze/badgeclock/internal/wallclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditCycleClosure(t *testing.T) {
	t.Parallel()

	m := Display
	var visited []Mode

	m, d := Step(m, input.SelLong)
	assert.True(t, d.IsZero())
	visited = append(visited, m)

	for i := 0; i < 5; i++ {
		m, d = Step(m, input.SelShort)
		assert.True(t, d.IsZero())
		visited = append(visited, m)
	}

	assert.Equal(t, []Mode{ChangeHours, ChangeMinutes, ChangeSeconds, ChangeYear, ChangeMonth, ChangeDay}, visited)

	m, _ = Step(m, input.SelLong)
	assert.Equal(t, Display, m)
}

func TestSelWrapsFromDayToHours(t *testing.T) {
	t.Parallel()

	m, d := Step(ChangeDay, input.SelShort)
	assert.Equal(t, ChangeHours, m)
	assert.True(t, d.IsZero())
}

func TestSelLongLeavesEveryEditMode(t *testing.T) {
	t.Parallel()

	for _, m := range []Mode{ChangeHours, ChangeMinutes, ChangeSeconds, ChangeYear, ChangeMonth, ChangeDay} {
		next, d := Step(m, input.SelLong)
		assert.Equal(t, Display, next, m.String())
		assert.True(t, d.IsZero())
	}
}

func TestAdjustments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode Mode
		unit wallclock.Delta
	}{
		{ChangeHours, wallclock.Delta{Hours: 1}},
		{ChangeMinutes, wallclock.Delta{Minutes: 1}},
		{ChangeSeconds, wallclock.Delta{Seconds: 1}},
		{ChangeYear, wallclock.Delta{Years: 1}},
		{ChangeMonth, wallclock.Delta{Months: 1}},
		{ChangeDay, wallclock.Delta{Days: 1}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.mode.String(), func(t *testing.T) {
			t.Parallel()

			for _, ev := range []input.Event{input.UpShort, input.UpLong} {
				m, d := Step(tt.mode, ev)
				assert.Equal(t, tt.mode, m, "adjusting does not change mode")
				assert.Equal(t, tt.unit, d)
			}
			for _, ev := range []input.Event{input.DownShort, input.DownLong} {
				m, d := Step(tt.mode, ev)
				assert.Equal(t, tt.mode, m)
				assert.Equal(t, tt.unit.Neg(), d)
			}

			_, d := Step(tt.mode, input.UpShort|input.DownShort)
			assert.True(t, d.IsZero(), "up and down in one tick cancel")
		})
	}
}

func TestDisplayIgnoresEverythingButSelLong(t *testing.T) {
	t.Parallel()

	for _, ev := range []input.Event{0, input.SelShort, input.UpShort, input.DownLong, input.UpLong | input.DownShort} {
		m, d := Step(Display, ev)
		assert.Equal(t, Display, m, ev.String())
		assert.True(t, d.IsZero())
	}
}

func TestSelAndAdjustSameTick(t *testing.T) {
	t.Parallel()

	m, d := Step(ChangeHours, input.SelShort|input.UpShort)
	assert.Equal(t, ChangeMinutes, m)
	assert.Equal(t, wallclock.Delta{Hours: 1}, d, "delta belongs to the field being left")
}

func TestUnknownModePanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { Step(Mode(42), input.SelShort) })
}

func TestLabelsAndNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ">-----HOURS", ChangeHours.Label())
	assert.Equal(t, "---", Display.Label())
	assert.Equal(t, "Mode(9)", Mode(9).String())
	assert.True(t, ChangeMonth.IsDate())
	assert.False(t, ChangeSeconds.IsDate())

	m, err := Parse("minutes")
	require.NoError(t, err)
	assert.Equal(t, ChangeMinutes, m)

	_, err = Parse("weeks")
	assert.Error(t, err)
}
