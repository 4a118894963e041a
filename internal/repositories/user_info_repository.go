package repositories

import (
	"database/sql"
	"fmt"

	"apicrete/internal/models"
)

type UserInfoRepository interface {
	Create(info *models.UserInfo) error
	GetByUserID(userID int) (*models.UserInfo, error)
	DeleteByUserID(userID int) error
}

type userInfoRepository struct {
	DB *sql.DB
}

func NewUserInfoRepository(db *sql.DB) UserInfoRepository {
	return &userInfoRepository{DB: db}
}

func (r *userInfoRepository) Create(info *models.UserInfo) error {
	const q = `
		INSERT INTO user_infos (user_id, ip_address, country)
		VALUES ($1, $2, $3)
	`
	if _, err := r.DB.Exec(q, info.UserID, info.IPAddress, info.Country); err != nil {
		return fmt.Errorf("user_info create: %w", err)
	}
	return nil
}

func (r *userInfoRepository) GetByUserID(userID int) (*models.UserInfo, error) {
	const q = `
		SELECT user_id, ip_address, country
		FROM user_infos
		WHERE user_id = $1
	`
	var info models.UserInfo
	if err := r.DB.QueryRow(q, userID).Scan(&info.UserID, &info.IPAddress, &info.Country); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user_info get: %w", err)
	}
	return &info, nil
}

func (r *userInfoRepository) DeleteByUserID(userID int) error {
	if _, err := r.DB.Exec(`DELETE FROM user_infos WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("user_info delete: %w", err)
	}
	return nil
}
