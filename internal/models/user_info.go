package models

// UserInfo — IP и страна, зафиксированные в момент регистрации.
// IPAddress == nil, если реальный адрес определить не удалось (localhost и т.п.).
type UserInfo struct {
	UserID    int     `json:"user_id"`
	IPAddress *string `json:"ip_address,omitempty"`
	Country   string  `json:"country"`
}
