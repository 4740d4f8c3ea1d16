package config

import (
	"strings"
	"time"
)

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	CORS        CORS

	Database Database `envPrefix:"DB_"`
	JWT      JWT      `envPrefix:"JWT_"`
	Admin    Admin    `envPrefix:"ADMIN_"`
	Etsy     Etsy     `envPrefix:"ETSY_"`
}

type Environment struct {
	Name string `env:"APP_ENV" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"5000"`
}

type CORS struct {
	Origins string `env:"CORS_ORIGINS" envDefault:"*"`
}

// AllowedOrigins splits the comma separated origin list. A lone "*" allows
// every origin.
func (c CORS) AllowedOrigins() []string {
	configured := strings.TrimSpace(c.Origins)
	if configured == "" || configured == "*" {
		return []string{"*"}
	}

	var origins []string
	for _, origin := range strings.Split(configured, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

type Database struct {
	// Driver is "sqlite" or "mysql". Left empty, mysql is chosen whenever a
	// host is configured.
	Driver string `env:"DRIVER"`
	Path   string `env:"PATH" envDefault:"data.db"`

	Host     string `env:"HOST"`
	Port     string `env:"PORT" envDefault:"3306"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME"`

	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"10"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"50"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"1h"`
}

func (d Database) ResolvedDriver() string {
	switch strings.ToLower(strings.TrimSpace(d.Driver)) {
	case DriverMySQL:
		return DriverMySQL
	case DriverSQLite:
		return DriverSQLite
	}
	if d.Host != "" {
		return DriverMySQL
	}
	return DriverSQLite
}

type JWT struct {
	Secret     string `env:"SECRET" envDefault:"dev-secret"`
	Issuer     string `env:"ISSUER" envDefault:"sgcgartglass"`
	TTLSeconds int    `env:"TTL_SECONDS" envDefault:"3600"`
}

func (j JWT) TTL() time.Duration {
	return time.Duration(j.TTLSeconds) * time.Second
}

type Admin struct {
	Email        string `env:"EMAIL" envDefault:"admin@example.com"`
	PasswordHash string `env:"PASSWORD_HASH"`
}

type Etsy struct {
	APIKey        string        `env:"API_KEY"`
	SharedSecret  string        `env:"SHARED_SECRET"`
	AccessToken   string        `env:"ACCESS_TOKEN"`
	BaseApiURL    string        `env:"API_BASE" envDefault:"https://openapi.etsy.com/v3/application"`
	Timeout       time.Duration `env:"TIMEOUT" envDefault:"10s"`
	RatePerSecond float64       `env:"RATE_PER_SECOND" envDefault:"5"`
}

// DefaultJWTSecret is the development fallback signing secret.
const DefaultJWTSecret = "dev-secret"

func (j JWT) Configured() bool {
	return j.Secret != "" && j.Secret != DefaultJWTSecret
}

func (a Admin) Configured() bool {
	return a.Email != "" && a.PasswordHash != ""
}

func (e Etsy) Configured() bool {
	return e.APIKey != "" && e.SharedSecret != ""
}
