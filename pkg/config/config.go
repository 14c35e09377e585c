package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Auth          AuthConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	CORS          CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FLOTILLA_APP_ENV" required:"true"`
	Port         string `envconfig:"FLOTILLA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FLOTILLA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FLOTILLA_LOG_WARN_STACK" default:"false"`

	// Timezone pins assignment and ledger timestamps to the operating
	// region instead of the host clock's zone.
	Timezone string `envconfig:"FLOTILLA_TIMEZONE" default:"America/Guatemala"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// Location resolves the configured region timezone, falling back to UTC.
func (a AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type DBConfig struct {
	DSN    string `envconfig:"FLOTILLA_DB_DSN"`
	Driver string `envconfig:"FLOTILLA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FLOTILLA_DB_HOST"`
	LegacyPort     int    `envconfig:"FLOTILLA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FLOTILLA_DB_USER"`
	LegacyPassword string `envconfig:"FLOTILLA_DB_PASSWORD"`
	LegacyName     string `envconfig:"FLOTILLA_DB_NAME"`
	LegacySSLMode  string `envconfig:"FLOTILLA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FLOTILLA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FLOTILLA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FLOTILLA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FLOTILLA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FLOTILLA_REDIS_URL"`
	Address      string        `envconfig:"FLOTILLA_REDIS_ADDR"`
	Password     string        `envconfig:"FLOTILLA_REDIS_PASSWORD"`
	DB           int           `envconfig:"FLOTILLA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FLOTILLA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FLOTILLA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FLOTILLA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FLOTILLA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FLOTILLA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FLOTILLA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FLOTILLA_JWT_ISSUER" default:"flotilla-backend"`
	ExpirationMinutes int    `envconfig:"FLOTILLA_JWT_EXPIRATION_MINUTES" default:"480"`
}

// Expiration returns the access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// AuthConfig holds the operator gate credentials. The password is supplied
// as an Argon2id hash; a plain password is accepted only as a dev fallback.
type AuthConfig struct {
	User          string `envconfig:"FLOTILLA_AUTH_USER" required:"true"`
	PasswordHash  string `envconfig:"FLOTILLA_AUTH_PASSWORD_HASH"`
	PlainPassword string `envconfig:"FLOTILLA_AUTH_PASSWORD"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FLOTILLA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FLOTILLA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FLOTILLA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FLOTILLA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FLOTILLA_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow    time.Duration `envconfig:"FLOTILLA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUserLimit int           `envconfig:"FLOTILLA_AUTH_RATE_LIMIT_LOGIN_USER_LIMIT" default:"5"`
	LoginIPLimit   int           `envconfig:"FLOTILLA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FLOTILLA_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"FLOTILLA_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
