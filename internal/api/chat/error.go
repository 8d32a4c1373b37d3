package chat

import "ReminderBot/pkg/response"

var (
	ErrEmptyMessage   = response.NewError(400, "message must not be empty")
	ErrMessageTooLong = response.NewError(400, "message too long")
)
