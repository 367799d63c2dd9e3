package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/valueaim/api/internal/model"
)

var ErrOfferingNotFound = errors.New("service offering not found")

type OfferingRepository interface {
	Create(offering *model.Offering) error
	ByID(id string) (*model.Offering, error)
	ByUserID(userID string) ([]model.Offering, error)
	Update(offering *model.Offering) error
	Delete(id string) error

	// ReplaceAllForUser deletes the user's offerings and inserts the
	// given set in one transaction (the bulk onboarding flow).
	ReplaceAllForUser(userID string, offerings []model.Offering) error
}

type offeringRepository struct {
	db *sqlx.DB
}

func NewOfferingRepository(db *sqlx.DB) OfferingRepository {
	return &offeringRepository{db: db}
}

const offeringInsert = `
	INSERT INTO services (
		id, user_id, interests, keywords, adjacency_expansion,
		target_industry, function_type, target_segment, offer_status,
		description, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

func prepareOffering(o *model.Offering) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.OfferStatus == "" {
		o.OfferStatus = model.OfferStatusActive
	}
	now := time.Now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
}

func (r *offeringRepository) Create(offering *model.Offering) error {
	prepareOffering(offering)

	_, err := r.db.Exec(offeringInsert,
		offering.ID, offering.UserID, offering.Interests, offering.Keywords,
		offering.AdjacencyExpansion, offering.TargetIndustry,
		offering.FunctionType, offering.TargetSegment, offering.OfferStatus,
		offering.Description, offering.CreatedAt, offering.UpdatedAt,
	)
	return err
}

func (r *offeringRepository) ByID(id string) (*model.Offering, error) {
	offering := &model.Offering{}
	err := r.db.Get(offering, `SELECT * FROM services WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOfferingNotFound
	}
	return offering, err
}

func (r *offeringRepository) ByUserID(userID string) ([]model.Offering, error) {
	offerings := []model.Offering{}
	err := r.db.Select(&offerings,
		`SELECT * FROM services WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	return offerings, err
}

func (r *offeringRepository) Update(offering *model.Offering) error {
	offering.UpdatedAt = time.Now()

	query := `
		UPDATE services SET
			interests = $1, keywords = $2, adjacency_expansion = $3,
			target_industry = $4, function_type = $5, target_segment = $6,
			offer_status = $7, description = $8, updated_at = $9
		WHERE id = $10
	`
	_, err := r.db.Exec(query,
		offering.Interests, offering.Keywords, offering.AdjacencyExpansion,
		offering.TargetIndustry, offering.FunctionType, offering.TargetSegment,
		offering.OfferStatus, offering.Description, offering.UpdatedAt,
		offering.ID,
	)
	return err
}

func (r *offeringRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrOfferingNotFound
	}

	return nil
}

func (r *offeringRepository) ReplaceAllForUser(userID string, offerings []model.Offering) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`DELETE FROM services WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}

	for i := range offerings {
		o := &offerings[i]
		o.UserID = userID
		prepareOffering(o)

		_, err = tx.Exec(offeringInsert,
			o.ID, o.UserID, o.Interests, o.Keywords, o.AdjacencyExpansion,
			o.TargetIndustry, o.FunctionType, o.TargetSegment, o.OfferStatus,
			o.Description, o.CreatedAt, o.UpdatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
