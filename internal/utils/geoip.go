package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// GeoIPClient — обращение к ipapi.co за страной по IP.
// Таймаут обязателен: медленный провайдер не должен тормозить регистрацию.
type GeoIPClient struct {
	BaseURL string
	HTTP    *http.Client
}

type geoIPResponse struct {
	CountryName string `json:"country_name"`
}

func NewGeoIPClient(baseURL string, timeout time.Duration) *GeoIPClient {
	if baseURL == "" {
		baseURL = "https://ipapi.co"
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &GeoIPClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// CountryForIP — имя страны для адреса. Ошибку отдаём вызывающему,
// fallback на "Unknown" — его дело.
func (c *GeoIPClient) CountryForIP(ip string) (string, error) {
	reqURL := fmt.Sprintf("%s/%s/json/", c.BaseURL, url.PathEscape(ip))

	resp, err := c.HTTP.Get(reqURL)
	if err != nil {
		return "", fmt.Errorf("geoip request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geoip returned status %d", resp.StatusCode)
	}

	var result geoIPResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("geoip parse response: %w", err)
	}
	if result.CountryName == "" {
		return "", fmt.Errorf("geoip response without country_name")
	}
	return result.CountryName, nil
}
