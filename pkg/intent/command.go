package intent

type Kind int

const (
	KindUnknown Kind = iota
	KindHelp
	KindAddReminder
	KindAddReminderNoTime
	KindListReminders
	KindClearAllReminders
	KindClearReminder
	KindTimeSpec
	KindConfirm
)

func (k Kind) String() string {
	switch k {
	case KindHelp:
		return "help"
	case KindAddReminder:
		return "add_reminder"
	case KindAddReminderNoTime:
		return "add_reminder_no_time"
	case KindListReminders:
		return "list_reminders"
	case KindClearAllReminders:
		return "clear_all_reminders"
	case KindClearReminder:
		return "clear_reminder"
	case KindTimeSpec:
		return "time_spec"
	case KindConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// Command is the typed result of classifying one utterance. Exactly one Kind
// per utterance; only the fields belonging to that Kind are set.
type Command struct {
	Kind     Kind     `json:"kind"`
	Text     string   `json:"text,omitempty"`
	Quantity int      `json:"quantity,omitempty"`
	Unit     TimeUnit `json:"unit,omitempty"`
	ID       int      `json:"id,omitempty"`
	Accepted bool     `json:"accepted,omitempty"`
}
