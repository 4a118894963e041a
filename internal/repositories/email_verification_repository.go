package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"apicrete/internal/models"
)

type EmailVerificationRepository interface {
	Upsert(userID int, code string, createdAt time.Time) error
	GetByUserID(userID int) (*models.EmailVerification, error)
	DeleteByUserID(userID int) error
}

type emailVerificationRepository struct {
	DB *sql.DB
}

func NewEmailVerificationRepository(db *sql.DB) EmailVerificationRepository {
	return &emailVerificationRepository{DB: db}
}

// Upsert — не больше одной живой записи на пользователя: повторная отправка
// перезаписывает код и таймстемп существующей строки.
func (r *emailVerificationRepository) Upsert(userID int, code string, createdAt time.Time) error {
	const q = `
		INSERT INTO email_verifications (user_id, otp_code, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET otp_code = EXCLUDED.otp_code, created_at = EXCLUDED.created_at
	`
	if _, err := r.DB.Exec(q, userID, code, createdAt); err != nil {
		return fmt.Errorf("email_verification upsert: %w", err)
	}
	return nil
}

func (r *emailVerificationRepository) GetByUserID(userID int) (*models.EmailVerification, error) {
	const q = `
		SELECT user_id, otp_code, created_at
		FROM email_verifications
		WHERE user_id = $1
	`
	var v models.EmailVerification
	if err := r.DB.QueryRow(q, userID).Scan(&v.UserID, &v.OTPCode, &v.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("email_verification get: %w", err)
	}
	return &v, nil
}

// DeleteByUserID — запись удаляется сразу после успешной верификации.
func (r *emailVerificationRepository) DeleteByUserID(userID int) error {
	if _, err := r.DB.Exec(`DELETE FROM email_verifications WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("email_verification delete: %w", err)
	}
	return nil
}
