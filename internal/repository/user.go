package repository

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/valueaim/api/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

type UserRepository interface {
	Create(user *model.User) error
	ByID(id string) (*model.User, error)
	ByEmail(email string) (*model.User, error)
	Update(user *model.User) error
	Delete(id string) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	query := `
		INSERT INTO users (
			id, name, email, password_hash, provider, provider_id, picture,
			role, plan, is_first_login, has_completed_onboarding,
			company_details_completed, service_details_completed,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Provider,
		user.ProviderID, user.Picture, user.Role, user.Plan,
		user.IsFirstLogin, user.HasCompletedOnboarding,
		user.CompanyDetailsCompleted, user.ServiceDetailsCompleted,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		// Unique violation message differs between SQLite and Postgres
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

func (r *userRepository) ByID(id string) (*model.User, error) {
	user := &model.User{}
	err := r.db.Get(user, `SELECT * FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (r *userRepository) ByEmail(email string) (*model.User, error) {
	user := &model.User{}
	err := r.db.Get(user, `SELECT * FROM users WHERE email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (r *userRepository) Update(user *model.User) error {
	user.UpdatedAt = time.Now()

	query := `
		UPDATE users SET
			name = $1, email = $2, password_hash = $3, picture = $4,
			role = $5, plan = $6, is_first_login = $7,
			has_completed_onboarding = $8, company_details_completed = $9,
			service_details_completed = $10, updated_at = $11
		WHERE id = $12
	`

	_, err := r.db.Exec(query,
		user.Name, user.Email, user.PasswordHash, user.Picture,
		user.Role, user.Plan, user.IsFirstLogin,
		user.HasCompletedOnboarding, user.CompanyDetailsCompleted,
		user.ServiceDetailsCompleted, user.UpdatedAt, user.ID,
	)
	return err
}

func (r *userRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}
