package model

import "time"

// Company holds the single company profile attached to a user.
// One row per user, enforced by a unique index on user_id.
type Company struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"userId"`
	CompanyName *string   `db:"company_name" json:"companyName"`
	Industry    *string   `db:"industry" json:"industry"`
	Website     *string   `db:"website" json:"website"`
	Country     *string   `db:"country" json:"country"`
	City        *string   `db:"city" json:"city"`
	Employees   string    `db:"employees" json:"employees"`
	Description *string   `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// validEmployeeRanges mirrors the closed set accepted by the frontend.
var validEmployeeRanges = map[string]bool{
	"": true, "1-10": true, "11-50": true, "51-200": true, "201-1000": true, "1000+": true,
}

func ValidEmployeeRange(s string) bool {
	return validEmployeeRanges[s]
}
