package scheduler

import (
	"testing"
	"time"

	"ReminderBot/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleFiresAfterDelay(t *testing.T) {
	clock := NewManualClock(time.Unix(1000, 0))
	sched := New(clock)

	var fired []entity.ScheduledReminder
	sched.Schedule(1, "tea", 60, func(r entity.ScheduledReminder) {
		fired = append(fired, r)
	})

	clock.Advance(59 * time.Second)
	assert.Empty(t, fired)

	statuses := sched.List()
	require.Len(t, statuses, 1)
	assert.Equal(t, 1, statuses[0].ID)
	assert.Equal(t, "tea", statuses[0].Text)
	assert.Equal(t, 1, statuses[0].SecondsLeft)

	clock.Advance(1 * time.Second)
	require.Len(t, fired, 1)
	assert.Equal(t, "tea", fired[0].Text)
	assert.Equal(t, 60, fired[0].Seconds)

	// Firing removes the reminder from the active set.
	assert.Empty(t, sched.List())
}

func TestCancelPreventsFiring(t *testing.T) {
	clock := NewManualClock(time.Unix(1000, 0))
	sched := New(clock)

	fired := 0
	sched.Schedule(1, "tea", 10, func(entity.ScheduledReminder) { fired++ })

	assert.True(t, sched.Cancel(1))
	assert.Empty(t, sched.List())

	clock.Advance(time.Minute)
	assert.Zero(t, fired)

	// Cancelling again is a no-op reported to the caller.
	assert.False(t, sched.Cancel(1))
}

func TestCancelUnknownID(t *testing.T) {
	sched := New(NewManualClock(time.Unix(1000, 0)))
	assert.False(t, sched.Cancel(42))
}

func TestCancelAll(t *testing.T) {
	clock := NewManualClock(time.Unix(1000, 0))
	sched := New(clock)

	fired := 0
	sched.Schedule(1, "tea", 10, func(entity.ScheduledReminder) { fired++ })
	sched.Schedule(2, "laundry", 20, func(entity.ScheduledReminder) { fired++ })
	require.Len(t, sched.List(), 2)

	sched.CancelAll()
	assert.Empty(t, sched.List())

	clock.Advance(time.Minute)
	assert.Zero(t, fired)
}

func TestListOrderedByID(t *testing.T) {
	clock := NewManualClock(time.Unix(1000, 0))
	sched := New(clock)

	sched.Schedule(2, "laundry", 120, nil)
	sched.Schedule(1, "tea", 60, nil)
	sched.Schedule(3, "oven", 30, nil)

	statuses := sched.List()
	require.Len(t, statuses, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{statuses[0].ID, statuses[1].ID, statuses[2].ID})
	assert.Equal(t, 60, statuses[0].SecondsLeft)
	assert.Equal(t, 120, statuses[1].SecondsLeft)
	assert.Equal(t, 30, statuses[2].SecondsLeft)
}

func TestManualClockRunsDueCallbacksInDeadlineOrder(t *testing.T) {
	clock := NewManualClock(time.Unix(1000, 0))
	sched := New(clock)

	var order []int
	sched.Schedule(1, "later", 20, func(r entity.ScheduledReminder) { order = append(order, r.ID) })
	sched.Schedule(2, "sooner", 10, func(r entity.ScheduledReminder) { order = append(order, r.ID) })

	clock.Advance(time.Minute)
	assert.Equal(t, []int{2, 1}, order)
}
