package handler

import (
	"complaintdesk/backend/internal/attachments"
	"complaintdesk/backend/internal/complaints"
)

// Handler carries the services behind the HTTP API.
type Handler struct {
	Complaints  *complaints.Service
	Attachments *attachments.Service
}

func NewHandler(c *complaints.Service, a *attachments.Service) *Handler {
	return &Handler{Complaints: c, Attachments: a}
}
