package models

import (
	"time"

	"github.com/google/uuid"
)

type MessageKind string

const (
	MessageKindContact  MessageKind = "contact"
	MessageKindEstimate MessageKind = "estimate"
)

// Message is an inbox entry: either a contact form submission or an estimate request.
type Message struct {
	ID        uuid.UUID   `json:"id"`
	Kind      MessageKind `json:"kind"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone,omitempty"`
	Subject   string      `json:"subject,omitempty"`
	Body      string      `json:"body"`
	ProductID *uuid.UUID  `json:"product_id,omitempty"`
	Images    []string    `json:"images,omitempty"`
	Read      bool        `json:"read"`
	CreatedAt time.Time   `json:"created_at"`
}

type ContactRequest struct {
	Name      string     `json:"name" validate:"required,min=2,max=120"`
	Email     string     `json:"email" validate:"required,email"`
	Phone     string     `json:"phone,omitempty" validate:"omitempty,max=40"`
	Subject   string     `json:"subject" validate:"required,max=200"`
	Body      string     `json:"body" validate:"required,min=5,max=5000"`
	ProductID *uuid.UUID `json:"product_id,omitempty"`
}

// EstimateRequest asks the dealer to value an object the sender owns.
type EstimateRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=120"`
	Email       string   `json:"email" validate:"required,email"`
	Phone       string   `json:"phone,omitempty" validate:"omitempty,max=40"`
	Description string   `json:"description" validate:"required,min=5,max=5000"`
	Images      []string `json:"images,omitempty" validate:"omitempty,max=10,dive,url"`
}

type MessageFilter struct {
	Kind       MessageKind
	UnreadOnly bool
	Page       int
	Limit      int
}

// EmailNotificationRequest is what the mail adapter sends.
type EmailNotificationRequest struct {
	To          string   `json:"to" validate:"required,email"`
	Subject     string   `json:"subject" validate:"required"`
	Content     string   `json:"content" validate:"required"`
	HTMLContent string   `json:"html_content,omitempty"`
	ReplyTo     string   `json:"reply_to,omitempty" validate:"omitempty,email"`
	CC          []string `json:"cc,omitempty" validate:"omitempty,dive,email"`
	BCC         []string `json:"bcc,omitempty" validate:"omitempty,dive,email"`
}

type MarkReadRequest struct {
	Read *bool `json:"read"`
}
