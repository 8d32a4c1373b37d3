package chatService

import (
	contextPkg "ReminderBot/pkg/context"
	"ReminderBot/pkg/intent"
	"ReminderBot/pkg/scheduler"
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type IChatService interface {
	NewSession(send func(text string)) *Session
	ParseUtterance(ctx context.Context, text string) intent.Command
}

type chatService struct {
	log    *logrus.Logger
	parser *intent.Parser
	clock  scheduler.Clock
}

func NewChatService(log *logrus.Logger, parser *intent.Parser, clock scheduler.Clock) IChatService {
	return &chatService{
		log:    log,
		parser: parser,
		clock:  clock,
	}
}

// NewSession builds the state owned by one connection: id counter, dialog
// history, duration memory and a scheduler. Nothing is shared between
// sessions. send delivers asynchronous frames (fired reminders) back to the
// client and must be safe to call from a timer goroutine.
func (s *chatService) NewSession(send func(text string)) *Session {
	return &Session{
		id:     uuid.NewString(),
		log:    s.log,
		parser: s.parser,
		sched:  scheduler.New(s.clock),
		send:   send,
		nextID: 1,
		memory: make(map[string]int),
	}
}

func (s *chatService) ParseUtterance(ctx context.Context, text string) intent.Command {
	command := s.parser.Parse(text)

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"kind":       command.Kind.String(),
	}).Debug("Parsed utterance")

	return command
}
