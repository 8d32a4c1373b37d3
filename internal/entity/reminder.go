package entity

import (
	"time"

	"ReminderBot/pkg/intent"
)

// ScheduledReminder is one armed notification. It exists exactly as long as a
// live timer is pending for it: firing or cancelling removes it.
type ScheduledReminder struct {
	ID      int       `json:"id"`
	Text    string    `json:"text"`
	Seconds int       `json:"seconds"`
	FireAt  time.Time `json:"fire_at"`
}

// ReminderStatus is the user-facing view of a pending reminder. SecondsLeft
// may be momentarily negative when the timer is about to fire; renderers clamp
// it to zero.
type ReminderStatus struct {
	ID          int    `json:"id"`
	Text        string `json:"text"`
	SecondsLeft int    `json:"seconds_left"`
}

// ReminderContext is a dialog slot: a partially filled reminder waiting for
// follow-up turns to complete it.
type ReminderContext struct {
	ID       int             `json:"id"`
	Text     string          `json:"text"`
	Quantity int             `json:"quantity"`
	Unit     intent.TimeUnit `json:"unit"`
}

func (c *ReminderContext) Complete() bool {
	return c.Text != "" && c.Unit != intent.UnitNone
}
