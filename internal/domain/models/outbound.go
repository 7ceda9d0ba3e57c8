package models

// OutboundMessageRequest represents a message pushed to a WhatsApp recipient.
type OutboundMessageRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}
