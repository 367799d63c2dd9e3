package model

import "time"

// Contact statuses move a submission through the support workflow.
const (
	ContactStatusNew        = "new"
	ContactStatusInProgress = "in_progress"
	ContactStatusResolved   = "resolved"
	ContactStatusClosed     = "closed"
)

func ValidContactStatus(s string) bool {
	switch s {
	case ContactStatusNew, ContactStatusInProgress, ContactStatusResolved, ContactStatusClosed:
		return true
	}
	return false
}

// Contact is one contact-form submission. UserID is set when the
// sender happened to be logged in, and survives as NULL if that
// account is later deleted.
type Contact struct {
	ID          string    `db:"id" json:"id"`
	UserID      *string   `db:"user_id" json:"userId"`
	FirstName   string    `db:"first_name" json:"firstName"`
	LastName    string    `db:"last_name" json:"lastName"`
	Email       string    `db:"email" json:"email"`
	PhoneNumber string    `db:"phone_number" json:"phoneNumber"`
	Subject     string    `db:"subject" json:"subject"`
	Message     string    `db:"message" json:"message"`
	Status      string    `db:"status" json:"status"`
	AdminNotes  *string   `db:"admin_notes" json:"adminNotes"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
