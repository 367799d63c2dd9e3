package model

import (
	"time"
)

// AuthProvider identifies how the account authenticates.
type AuthProvider string

const (
	ProviderEmail     AuthProvider = "email"
	ProviderGoogle    AuthProvider = "google"
	ProviderMicrosoft AuthProvider = "microsoft"
	ProviderApple     AuthProvider = "apple"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	PlanFree       = "Free Plan"
	PlanPro        = "Pro Plan"
	PlanEnterprise = "Enterprise Plan"
)

// ValidPlan reports whether p is one of the known plan tags.
func ValidPlan(p string) bool {
	return p == PlanFree || p == PlanPro || p == PlanEnterprise
}

type User struct {
	ID           string       `db:"id" json:"_id"`
	Name         *string      `db:"name" json:"name"`
	Email        string       `db:"email" json:"email"`
	PasswordHash *string      `db:"password_hash" json:"-"` // Nullable for OAuth accounts
	Provider     AuthProvider `db:"provider" json:"provider"`
	ProviderID   *string      `db:"provider_id" json:"-"`
	Picture      *string      `db:"picture" json:"picture"`
	Role         string       `db:"role" json:"role"`
	Plan         string       `db:"plan" json:"plan"`

	IsFirstLogin            bool `db:"is_first_login" json:"isFirstLogin"`
	HasCompletedOnboarding  bool `db:"has_completed_onboarding" json:"hasCompletedOnboarding"`
	CompanyDetailsCompleted bool `db:"company_details_completed" json:"companyDetailsCompleted"`
	ServiceDetailsCompleted bool `db:"service_details_completed" json:"serviceDetailsCompleted"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
