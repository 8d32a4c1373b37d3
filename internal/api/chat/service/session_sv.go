package chatService

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"sync"

	"ReminderBot/internal/entity"
	"ReminderBot/pkg/intent"
	"ReminderBot/pkg/scheduler"

	"github.com/sirupsen/logrus"
)

const (
	// Greeting is sent once when a connection opens.
	Greeting = "Greetings, friend! Type help to get started."

	fallbackReply = "I'm sorry, I don't understand that. Type help to see what I can do."
	helpReply     = "You can tell me things like:<ul>" +
		"<li>remind me about the laundry in 20 minutes</li>" +
		"<li>remind me about my homework</li>" +
		"<li>it takes 5 minutes</li>" +
		"<li>list reminders</li>" +
		"<li>clear reminder 2</li>" +
		"<li>clear all reminders</li></ul>"
	noRemindersReply = "You have no reminders."
	rememberedReply  = "Consider it done."
	declinedReply    = "Alright, I won't."
)

// Session executes commands for one connection. Turns arrive sequentially
// from the read loop; timer callbacks are the only other mutator, so every
// state change goes through the mutex and completes atomically.
type Session struct {
	id     string
	log    *logrus.Logger
	parser *intent.Parser
	sched  *scheduler.Scheduler
	send   func(text string)

	mu     sync.Mutex
	nextID int
	dialog []*entity.ReminderContext
	memory map[string]int
	closed bool
}

func (s *Session) ID() string {
	return s.id
}

// HandleMessage classifies one inbound frame and applies its dialog
// transition. Every turn produces exactly one reply; all failures surface as
// reply text, never as an error.
func (s *Session) HandleMessage(text string) string {
	command := s.parser.Parse(text)

	s.log.WithFields(logrus.Fields{
		"session_id": s.id,
		"kind":       command.Kind.String(),
	}).Debug("Handling chat turn")

	s.mu.Lock()
	defer s.mu.Unlock()

	switch command.Kind {
	case intent.KindHelp:
		return helpReply
	case intent.KindAddReminder:
		return s.addReminder(command)
	case intent.KindAddReminderNoTime:
		return s.addReminderNoTime(command)
	case intent.KindTimeSpec:
		return s.fillDuration(command)
	case intent.KindConfirm:
		return s.resolveConfirmation(command)
	case intent.KindListReminders:
		return s.listReminders()
	case intent.KindClearAllReminders:
		s.sched.CancelAll()
		return "Ok, I removed all of your reminders."
	case intent.KindClearReminder:
		if !s.sched.Cancel(command.ID) {
			return fmt.Sprintf("There is no reminder with id %d.", command.ID)
		}
		return fmt.Sprintf("Ok, I removed reminder %d.", command.ID)
	default:
		return fallbackReply
	}
}

// Close cancels every pending timer. Mandatory on disconnect; a skipped close
// leaks callbacks holding a dead send func.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.sched.CancelAll()

	s.log.WithFields(logrus.Fields{"session_id": s.id}).Info("Chat session closed")
}

func (s *Session) addReminder(command intent.Command) string {
	if command.Unit == intent.UnitNone {
		return fallbackReply
	}

	subject := shiftPerson(command.Text)
	context := &entity.ReminderContext{
		ID:       s.allocateID(),
		Text:     subject,
		Quantity: command.Quantity,
		Unit:     command.Unit,
	}
	s.dialog = append(s.dialog, context)

	return s.schedule(context)
}

func (s *Session) addReminderNoTime(command intent.Command) string {
	subject := shiftPerson(command.Text)
	context := &entity.ReminderContext{
		ID:   s.allocateID(),
		Text: subject,
	}
	s.dialog = append(s.dialog, context)

	if seconds, known := s.memory[subject]; known {
		context.Quantity = seconds
		context.Unit = intent.UnitSeconds
		return s.schedule(context)
	}

	return fmt.Sprintf("How long does %s take?", subject)
}

// fillDuration completes the active context from a follow-up duration turn. A
// context that is already complete is never a target: a stray "5 minutes"
// right after a fully specified reminder gets the fallback reply instead of
// re-scheduling anything.
func (s *Session) fillDuration(command intent.Command) string {
	context := s.activeContext()
	if context == nil || context.Complete() {
		return fallbackReply
	}
	if command.Unit == intent.UnitNone {
		return fallbackReply
	}

	context.Quantity = command.Quantity
	context.Unit = command.Unit

	return s.schedule(context)
}

func (s *Session) resolveConfirmation(command intent.Command) string {
	context := s.activeContext()
	if context == nil {
		return fallbackReply
	}

	if !command.Accepted {
		return declinedReply
	}
	if !context.Complete() {
		return fallbackReply
	}

	s.memory[context.Text] = intent.ToSeconds(context.Quantity, context.Unit)

	s.log.WithFields(logrus.Fields{
		"session_id": s.id,
		"text":       context.Text,
		"seconds":    s.memory[context.Text],
	}).Info("Remembered reminder duration")

	return rememberedReply
}

func (s *Session) listReminders() string {
	statuses := s.sched.List()
	if len(statuses) == 0 {
		return noRemindersReply
	}

	var b strings.Builder
	b.WriteString("<table><tr><th>id</th><th>seconds left</th><th>reminder</th></tr>")
	for _, status := range statuses {
		left := status.SecondsLeft
		if left < 0 {
			left = 0
		}
		fmt.Fprintf(&b, "<tr><td>%d</td><td>%d</td><td>%s</td></tr>",
			status.ID, left, html.EscapeString(status.Text))
	}
	b.WriteString("</table>")

	return b.String()
}

func (s *Session) schedule(context *entity.ReminderContext) string {
	seconds := intent.ToSeconds(context.Quantity, context.Unit)

	s.sched.Schedule(context.ID, context.Text, seconds, s.onFire)

	s.log.WithFields(logrus.Fields{
		"session_id":  s.id,
		"reminder_id": context.ID,
		"seconds":     seconds,
	}).Info("Scheduled reminder")

	return fmt.Sprintf("Ok, I will remind you about %s in %d seconds.", context.Text, seconds)
}

// onFire runs on the timer goroutine once the reminder has left the active
// set. When the subject's duration is not remembered yet, the fired context
// is re-appended to the dialog so a following yes/no targets it.
func (s *Session) onFire(reminder entity.ScheduledReminder) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	_, known := s.memory[reminder.Text]
	if !known {
		s.dialog = append(s.dialog, &entity.ReminderContext{
			ID:       reminder.ID,
			Text:     reminder.Text,
			Quantity: reminder.Seconds,
			Unit:     intent.UnitSeconds,
		})
	}
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"session_id":  s.id,
		"reminder_id": reminder.ID,
	}).Info("Reminder fired")

	s.send(fmt.Sprintf("Time is up! Don't forget about %s.", reminder.Text))
	if !known {
		s.send(fmt.Sprintf("Should I remember that %s takes %d seconds?", reminder.Text, reminder.Seconds))
	}
}

// activeContext is the last pushed dialog entry. Entries are only appended,
// never reordered.
func (s *Session) activeContext() *entity.ReminderContext {
	if len(s.dialog) == 0 {
		return nil
	}
	return s.dialog[len(s.dialog)-1]
}

func (s *Session) allocateID() int {
	id := s.nextID
	s.nextID++
	return id
}

var (
	myWord = regexp.MustCompile(`\bmy\b`)
	meWord = regexp.MustCompile(`\bme\b`)
)

// shiftPerson rewrites first-person subjects so replies read naturally:
// "my homework" is stored and echoed as "your homework". Whole words only,
// case-sensitive.
func shiftPerson(text string) string {
	text = myWord.ReplaceAllString(text, "your")
	return meWord.ReplaceAllString(text, "you")
}
