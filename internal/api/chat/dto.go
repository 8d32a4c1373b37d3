package chat

import "ReminderBot/pkg/intent"

type ParseRequest struct {
	Message string `json:"message" validate:"required,min=1"`
}

type ParseResponse struct {
	Message string         `json:"message"`
	Command intent.Command `json:"command"`
	Kind    string         `json:"kind"`
}
