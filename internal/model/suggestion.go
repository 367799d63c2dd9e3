package model

import "time"

const (
	SuggestionStatusPending     = "pending"
	SuggestionStatusReviewed    = "reviewed"
	SuggestionStatusImplemented = "implemented"
	SuggestionStatusRejected    = "rejected"
)

func ValidSuggestionStatus(s string) bool {
	switch s {
	case SuggestionStatusPending, SuggestionStatusReviewed, SuggestionStatusImplemented, SuggestionStatusRejected:
		return true
	}
	return false
}

// Suggestion is a user-submitted idea, optionally with an uploaded
// attachment kept in object storage. AttachmentPath is the storage
// key, not a filesystem path.
type Suggestion struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"userId"`
	Suggestion     *string   `db:"suggestion" json:"suggestion"`
	AttachmentPath *string   `db:"attachment_path" json:"attachmentPath"`
	AttachmentName *string   `db:"attachment_name" json:"attachmentName"`
	AttachmentSize *int64    `db:"attachment_size" json:"attachmentSize"`
	Status         string    `db:"status" json:"status"`
	AdminNotes     *string   `db:"admin_notes" json:"adminNotes"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}
