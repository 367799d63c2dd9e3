package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/valueaim/api/internal/model"
)

var ErrOTPNotFound = errors.New("otp not found")

type OTPRepository interface {
	// Replace removes every code for the (identifier, purpose) pair and
	// inserts the new one in a single transaction, so two concurrent
	// issuances cannot leave two live codes behind.
	Replace(otp *model.OTP) error

	// Consume atomically marks the matching unused, unexpired code as
	// used and returns it. Expired, already-used, and mismatched codes
	// all come back as ErrOTPNotFound.
	Consume(identifier string, purpose model.OTPPurpose, code string, now time.Time) (*model.OTP, error)

	// DeleteExpired prunes used and expired rows older than the cutoff.
	// Maintenance only; never called from the verification path.
	DeleteExpired(olderThan time.Duration) (int64, error)
}

type otpRepository struct {
	db *sqlx.DB
}

func NewOTPRepository(db *sqlx.DB) OTPRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) Replace(otp *model.OTP) error {
	if otp.ID == "" {
		otp.ID = uuid.New().String()
	}
	if otp.CreatedAt.IsZero() {
		otp.CreatedAt = time.Now()
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`DELETE FROM otps WHERE identifier = $1 AND purpose = $2`,
		otp.Identifier, otp.Purpose)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO otps (id, identifier, purpose, code, expires_at, used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, otp.ID, otp.Identifier, otp.Purpose, otp.Code, otp.ExpiresAt, otp.Used, otp.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *otpRepository) Consume(identifier string, purpose model.OTPPurpose, code string, now time.Time) (*model.OTP, error) {
	var o model.OTP

	// Single UPDATE with RETURNING: only one caller can flip used, so a
	// second verify with the same code finds no row.
	query := `
		UPDATE otps
		SET used = TRUE
		WHERE identifier = $1
		AND purpose = $2
		AND code = $3
		AND used = FALSE
		AND expires_at > $4
		RETURNING *
	`

	err := r.db.Get(&o, query, identifier, purpose, code, now)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOTPNotFound
	}
	if err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *otpRepository) DeleteExpired(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	result, err := r.db.Exec(`
		DELETE FROM otps
		WHERE (used = TRUE AND created_at < $1)
		   OR (expires_at < $1)
	`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
