// Package queue defines message payloads exchanged over the message broker.
package queue

// InquiryReceivedEvent is published after a contact message is stored.
// It carries enough information for downstream consumers to log or feed
// analytics without querying the primary database.
type InquiryReceivedEvent struct {
	MessageID    uint64 `json:"message_id"`
	PropertyID   uint64 `json:"property_id"`
	PropertyName string `json:"property_name"`
	ContactEmail string `json:"contact_email"`
	Message      string `json:"message"`
	ReceivedAt   string `json:"received_at"`
}
