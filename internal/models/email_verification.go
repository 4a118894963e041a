package models

import "time"

// EmailVerification — живой OTP-код пользователя. Одна строка на пользователя:
// повторная отправка перезаписывает code и created_at, а не создаёт новую строку.
type EmailVerification struct {
	UserID    int       `json:"user_id"`
	OTPCode   string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired — истёк ли код относительно заданного TTL.
func (v *EmailVerification) IsExpired(ttl time.Duration, now time.Time) bool {
	return now.After(v.CreatedAt.Add(ttl))
}
