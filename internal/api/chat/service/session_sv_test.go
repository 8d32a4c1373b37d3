package chatService

import (
	"io"
	"testing"
	"time"

	"ReminderBot/pkg/intent"
	"ReminderBot/pkg/scheduler"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionFixture struct {
	session *Session
	clock   *scheduler.ManualClock
	async   []string
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	f := &sessionFixture{
		clock: scheduler.NewManualClock(time.Unix(1000, 0)),
	}

	service := NewChatService(logger, intent.NewParser(), f.clock)
	f.session = service.NewSession(func(text string) {
		f.async = append(f.async, text)
	})

	return f
}

func TestHelpAndUnknown(t *testing.T) {
	f := newSessionFixture(t)

	assert.Contains(t, f.session.HandleMessage("help"), "<ul>")
	assert.Equal(t, fallbackReply, f.session.HandleMessage("banana"))

	// An unknown turn mutates nothing.
	assert.Equal(t, noRemindersReply, f.session.HandleMessage("list reminders"))
}

func TestAddReminderWithDuration(t *testing.T) {
	f := newSessionFixture(t)

	reply := f.session.HandleMessage("remind me about the tea in 90 seconds")
	assert.Equal(t, "Ok, I will remind you about tea in 90 seconds.", reply)

	list := f.session.HandleMessage("list reminders")
	assert.Contains(t, list, "<table>")
	assert.Contains(t, list, "<td>1</td>")
	assert.Contains(t, list, "<td>90</td>")
	assert.Contains(t, list, "<td>tea</td>")
}

func TestDialogContinuity(t *testing.T) {
	f := newSessionFixture(t)

	reply := f.session.HandleMessage("remind me about my homework")
	assert.Equal(t, "How long does your homework take?", reply)

	reply = f.session.HandleMessage("20 minutes")
	assert.Equal(t, "Ok, I will remind you about your homework in 1200 seconds.", reply)

	list := f.session.HandleMessage("list reminders")
	assert.Contains(t, list, "<td>1200</td>")
	assert.Contains(t, list, "<td>your homework</td>")
}

func TestFiredReminderAsksToRemember(t *testing.T) {
	f := newSessionFixture(t)

	f.session.HandleMessage("remind me about my homework")
	f.session.HandleMessage("20 minutes")

	f.clock.Advance(1200 * time.Second)

	require.Len(t, f.async, 2)
	assert.Equal(t, "Time is up! Don't forget about your homework.", f.async[0])
	assert.Equal(t, "Should I remember that your homework takes 1200 seconds?", f.async[1])

	assert.Equal(t, rememberedReply, f.session.HandleMessage("yes"))

	// The remembered duration is reused without asking again.
	reply := f.session.HandleMessage("remind me about my homework")
	assert.Equal(t, "Ok, I will remind you about your homework in 1200 seconds.", reply)
}

func TestFiredReminderWithRememberedDurationStaysQuiet(t *testing.T) {
	f := newSessionFixture(t)

	f.session.HandleMessage("remind me about my homework")
	f.session.HandleMessage("10 seconds")
	f.clock.Advance(10 * time.Second)
	f.session.HandleMessage("yes")
	f.async = nil

	f.session.HandleMessage("remind me about my homework")
	f.clock.Advance(10 * time.Second)

	require.Len(t, f.async, 1)
	assert.Equal(t, "Time is up! Don't forget about your homework.", f.async[0])
}

func TestConfirmDeclined(t *testing.T) {
	f := newSessionFixture(t)

	f.session.HandleMessage("remind me about the tea in 10 seconds")
	f.clock.Advance(10 * time.Second)

	assert.Equal(t, declinedReply, f.session.HandleMessage("no"))

	// Nothing was remembered, so the next add asks for a duration.
	reply := f.session.HandleMessage("remind me about the tea")
	assert.Equal(t, "How long does tea take?", reply)
}

func TestConfirmWithoutDialog(t *testing.T) {
	f := newSessionFixture(t)

	assert.Equal(t, fallbackReply, f.session.HandleMessage("yes"))
	assert.Equal(t, fallbackReply, f.session.HandleMessage("no"))
}

func TestTimeSpecWithoutDialog(t *testing.T) {
	f := newSessionFixture(t)

	assert.Equal(t, fallbackReply, f.session.HandleMessage("20 minutes"))
	assert.Equal(t, noRemindersReply, f.session.HandleMessage("list reminders"))
}

// A duration turn right after a fully specified reminder must not re-schedule
// or overwrite the completed context.
func TestStrayTimeSpecAfterCompleteReminder(t *testing.T) {
	f := newSessionFixture(t)

	f.session.HandleMessage("remind me about the tea in 10 seconds")
	assert.Equal(t, fallbackReply, f.session.HandleMessage("5 minutes"))

	list := f.session.HandleMessage("list reminders")
	assert.Contains(t, list, "<td>10</td>")
	assert.NotContains(t, list, "<td>300</td>")
}

// A timed phrasing with an unrecognized unit gets the fallback reply; it must
// not open an untimed dialog asking how long "tea in 5 bananas" takes.
func TestMalformedUnitIsNotSwallowed(t *testing.T) {
	f := newSessionFixture(t)

	assert.Equal(t, fallbackReply, f.session.HandleMessage("remind me about the tea in 5 bananas"))
	assert.Equal(t, noRemindersReply, f.session.HandleMessage("list reminders"))
	assert.Equal(t, fallbackReply, f.session.HandleMessage("5 minutes"))
}

func TestReminderIDsAreUnique(t *testing.T) {
	f := newSessionFixture(t)

	f.session.HandleMessage("remind me about the tea in 60 seconds")
	f.session.HandleMessage("remind me about the tea in 60 seconds")

	list := f.session.HandleMessage("list reminders")
	assert.Contains(t, list, "<td>1</td>")
	assert.Contains(t, list, "<td>2</td>")
}

func TestClearReminder(t *testing.T) {
	f := newSessionFixture(t)

	f.session.HandleMessage("remind me about the tea in 60 seconds")

	assert.Equal(t, "Ok, I removed reminder 1.", f.session.HandleMessage("clear reminder 1"))
	assert.Equal(t, noRemindersReply, f.session.HandleMessage("list reminders"))

	// The cancelled timer never fires, even past its original delay.
	f.clock.Advance(2 * time.Minute)
	assert.Empty(t, f.async)

	assert.Equal(t, "There is no reminder with id 1.", f.session.HandleMessage("clear reminder 1"))
}

func TestClearAllReminders(t *testing.T) {
	f := newSessionFixture(t)

	f.session.HandleMessage("remind me about the tea in 60 seconds")
	f.session.HandleMessage("remind me about the laundry in 120 seconds")

	assert.Equal(t, "Ok, I removed all of your reminders.", f.session.HandleMessage("clear all reminders"))
	assert.Equal(t, noRemindersReply, f.session.HandleMessage("list reminders"))

	f.clock.Advance(5 * time.Minute)
	assert.Empty(t, f.async)
}

func TestCloseCancelsTimers(t *testing.T) {
	f := newSessionFixture(t)

	f.session.HandleMessage("remind me about the tea in 10 seconds")
	f.session.Close()

	f.clock.Advance(time.Minute)
	assert.Empty(t, f.async)
}

func TestShiftPerson(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"my homework", "your homework"},
		{"the dog and me", "the dog and you"},
		{"myself", "myself"},
		{"command performance", "command performance"},
		{"my dog likes me", "your dog likes you"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, shiftPerson(tt.in), "input %q", tt.in)
	}
}

func TestGreetingText(t *testing.T) {
	assert.Equal(t, "Greetings, friend! Type help to get started.", Greeting)
}
