package scheduler

import (
	"sort"
	"sync"
	"time"

	"ReminderBot/internal/entity"
)

// Scheduler owns the pending reminders of one chat session. Timer callbacks
// run off the session's turn loop, so every mutation of the active set goes
// through the mutex; a reminder that has been cancelled while its callback was
// still queued is dropped instead of fired.
type Scheduler struct {
	clock  Clock
	mu     sync.Mutex
	active map[int]*pending
}

type pending struct {
	reminder entity.ScheduledReminder
	timer    Timer
}

func New(clock Clock) *Scheduler {
	return &Scheduler{
		clock:  clock,
		active: make(map[int]*pending),
	}
}

// Schedule arms a one-shot notification firing after the given number of
// seconds. onFire runs on the timer's goroutine, after the reminder has left
// the active set.
func (s *Scheduler) Schedule(id int, text string, seconds int, onFire func(entity.ScheduledReminder)) entity.ScheduledReminder {
	delay := time.Duration(seconds) * time.Second

	s.mu.Lock()
	defer s.mu.Unlock()

	reminder := entity.ScheduledReminder{
		ID:      id,
		Text:    text,
		Seconds: seconds,
		FireAt:  s.clock.Now().Add(delay),
	}

	entry := &pending{reminder: reminder}
	entry.timer = s.clock.AfterFunc(delay, func() {
		s.mu.Lock()
		_, live := s.active[id]
		delete(s.active, id)
		s.mu.Unlock()

		if live && onFire != nil {
			onFire(reminder)
		}
	})
	s.active[id] = entry

	return reminder
}

// Cancel stops the reminder's timer and removes it from the active set. It
// reports false when no reminder with that id is pending.
func (s *Scheduler) Cancel(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.active[id]
	if !ok {
		return false
	}

	entry.timer.Stop()
	delete(s.active, id)
	return true
}

// CancelAll stops every pending timer. It must run on session teardown so
// disconnected sessions do not leak callbacks.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, entry := range s.active {
		entry.timer.Stop()
		delete(s.active, id)
	}
}

// List reports the pending reminders ordered by id, with remaining time
// rounded to whole seconds.
func (s *Scheduler) List() []entity.ReminderStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	statuses := make([]entity.ReminderStatus, 0, len(s.active))
	for _, entry := range s.active {
		statuses = append(statuses, entity.ReminderStatus{
			ID:          entry.reminder.ID,
			Text:        entry.reminder.Text,
			SecondsLeft: int(entry.reminder.FireAt.Sub(now).Round(time.Second) / time.Second),
		})
	}

	sort.Slice(statuses, func(i, j int) bool { return statuses[i].ID < statuses[j].ID })
	return statuses
}
