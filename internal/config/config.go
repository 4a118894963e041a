package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration — yaml.v3 не умеет "10m" в time.Duration напрямую.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

type VerificationConfig struct {
	CodeTTL Duration `yaml:"code_ttl"`
}

type GeoIPConfig struct {
	BaseURL string   `yaml:"base_url"`
	Timeout Duration `yaml:"timeout"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	Verification VerificationConfig `yaml:"verification"`
	GeoIP        GeoIPConfig        `yaml:"geoip"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	if cfg.Verification.CodeTTL <= 0 {
		cfg.Verification.CodeTTL = Duration(10 * time.Minute)
	}
	if cfg.GeoIP.BaseURL == "" {
		cfg.GeoIP.BaseURL = "https://ipapi.co"
	}
	if cfg.GeoIP.Timeout <= 0 {
		cfg.GeoIP.Timeout = Duration(3 * time.Second)
	}
	return &cfg
}
