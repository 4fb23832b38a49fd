package domain

import "time"

// ContactSubmission is an inquiry submitted through the public contact form.
// Submissions live only in the local mirror and its snapshot; they are never
// written to the database.
type ContactSubmission struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
