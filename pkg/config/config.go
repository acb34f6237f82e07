package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Uploads      UploadsConfig
	Wizard       WizardConfig
	Reports      ReportsConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"KOSHERSPECT_APP_ENV" default:"dev"`
	Port         string `envconfig:"KOSHERSPECT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"KOSHERSPECT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"KOSHERSPECT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"KOSHERSPECT_DB_DSN"`
	Driver string `envconfig:"KOSHERSPECT_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"KOSHERSPECT_DB_HOST"`
	Port     int    `envconfig:"KOSHERSPECT_DB_PORT" default:"5432"`
	User     string `envconfig:"KOSHERSPECT_DB_USER"`
	Password string `envconfig:"KOSHERSPECT_DB_PASSWORD"`
	Name     string `envconfig:"KOSHERSPECT_DB_NAME"`
	SSLMode  string `envconfig:"KOSHERSPECT_DB_SSLMODE" default:"disable"`

	SQLitePath string `envconfig:"KOSHERSPECT_DB_SQLITE_PATH" default:"kosherspect.db"`

	MaxOpenConns    int           `envconfig:"KOSHERSPECT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"KOSHERSPECT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"KOSHERSPECT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"KOSHERSPECT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" || !strings.EqualFold(d.Driver, "postgres") {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("db config requires either KOSHERSPECT_DB_DSN or host/user/name")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"KOSHERSPECT_REDIS_URL"`
	Address      string        `envconfig:"KOSHERSPECT_REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"KOSHERSPECT_REDIS_PASSWORD"`
	DB           int           `envconfig:"KOSHERSPECT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"KOSHERSPECT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"KOSHERSPECT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"KOSHERSPECT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"KOSHERSPECT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"KOSHERSPECT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type UploadsConfig struct {
	Dir              string `envconfig:"KOSHERSPECT_UPLOADS_DIR" default:"uploads"`
	PublicPrefix     string `envconfig:"KOSHERSPECT_UPLOADS_PUBLIC_PREFIX" default:"/uploads"`
	MaxFileBytes     int64  `envconfig:"KOSHERSPECT_UPLOADS_MAX_FILE_BYTES" default:"10485760"`
	MaxPhotoFiles    int    `envconfig:"KOSHERSPECT_UPLOADS_MAX_PHOTO_FILES" default:"10"`
	MaxDocumentFiles int    `envconfig:"KOSHERSPECT_UPLOADS_MAX_DOCUMENT_FILES" default:"5"`
}

type WizardConfig struct {
	SessionTTL time.Duration `envconfig:"KOSHERSPECT_WIZARD_SESSION_TTL" default:"12h"`
	HandoffTTL time.Duration `envconfig:"KOSHERSPECT_WIZARD_HANDOFF_TTL" default:"10m"`
}

type ReportsConfig struct {
	PreviewTTL time.Duration `envconfig:"KOSHERSPECT_REPORTS_PREVIEW_TTL" default:"15m"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"KOSHERSPECT_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"KOSHERSPECT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"KOSHERSPECT_AUTO_MIGRATE" default:"false"`
}
