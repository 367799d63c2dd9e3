package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/valueaim/api/internal/model"
)

var ErrCompanyNotFound = errors.New("company not found")

type CompanyRepository interface {
	ByUserID(userID string) (*model.Company, error)
	Create(company *model.Company) error
	Update(company *model.Company) error
	DeleteByUserID(userID string) error
}

type companyRepository struct {
	db *sqlx.DB
}

func NewCompanyRepository(db *sqlx.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) ByUserID(userID string) (*model.Company, error) {
	company := &model.Company{}
	err := r.db.Get(company, `SELECT * FROM companies WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCompanyNotFound
	}
	return company, err
}

func (r *companyRepository) Create(company *model.Company) error {
	if company.ID == "" {
		company.ID = uuid.New().String()
	}
	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now

	query := `
		INSERT INTO companies (
			id, user_id, company_name, industry, website, country, city,
			employees, description, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.Exec(query,
		company.ID, company.UserID, company.CompanyName, company.Industry,
		company.Website, company.Country, company.City, company.Employees,
		company.Description, company.CreatedAt, company.UpdatedAt,
	)
	return err
}

func (r *companyRepository) Update(company *model.Company) error {
	company.UpdatedAt = time.Now()

	query := `
		UPDATE companies SET
			company_name = $1, industry = $2, website = $3, country = $4,
			city = $5, employees = $6, description = $7, updated_at = $8
		WHERE user_id = $9
	`
	_, err := r.db.Exec(query,
		company.CompanyName, company.Industry, company.Website,
		company.Country, company.City, company.Employees,
		company.Description, company.UpdatedAt, company.UserID,
	)
	return err
}

func (r *companyRepository) DeleteByUserID(userID string) error {
	result, err := r.db.Exec(`DELETE FROM companies WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCompanyNotFound
	}

	return nil
}
