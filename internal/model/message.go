package model

import "time"

// Message is a short post on the shared homepage
type Message struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	MessageText string    `json:"message_text"`
	Timestamp   time.Time `json:"timestamp"`
}

// AuthorSummary is the part of a user shown next to each message
type AuthorSummary struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Username         string `json:"username"`
	MembershipStatus string `json:"membership_status"`
}

// MessageWithAuthor pairs a message with the author referenced by its own UserID.
type MessageWithAuthor struct {
	Message
	Author AuthorSummary `json:"author"`
}

// CreateMessageInput is the raw create-post form submission
type CreateMessageInput struct {
	Title       string `form:"title"`
	MessageText string `form:"message"`
}
