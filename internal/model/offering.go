package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	OfferStatusActive   = "Active"
	OfferStatusInactive = "Inactive"
)

// StringList is a []string stored as a JSON column. Both SQLite and
// Postgres keep it as text, so Value/Scan round-trip through
// encoding/json.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

// Offering is one service offering owned by a user. A user can have
// many; the onboarding flow usually bulk-replaces the whole set.
type Offering struct {
	ID                 string     `db:"id" json:"id"`
	UserID             string     `db:"user_id" json:"userId"`
	Interests          StringList `db:"interests" json:"interests"`
	Keywords           StringList `db:"keywords" json:"keywords"`
	AdjacencyExpansion StringList `db:"adjacency_expansion" json:"adjacencyExpansion"`
	TargetIndustry     StringList `db:"target_industry" json:"targetIndustry"`
	FunctionType       StringList `db:"function_type" json:"functionType"`
	TargetSegment      StringList `db:"target_segment" json:"targetSegment"`
	OfferStatus        string     `db:"offer_status" json:"offerStatus"`
	Description        *string    `db:"description" json:"description"`
	CreatedAt          time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updatedAt"`
}
