package config

import (
	"encoding/base64"
	"fmt"
	"log"
	"math"
	"runtime"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Secret struct {
	Bytes []byte
}

type Target string

const (
	App     Target = "app"
	Backup  Target = "backup"
	UserAdd Target = "useradd"
)

type StoreDriver string

const (
	Postgres StoreDriver = "postgres"
	Memory   StoreDriver = "memory"
)

type Config struct {
	// Running localy or not
	Debug    bool   `env:"DEBUG" envDefault:"false"`
	Protocol string `env:"PROTOCOL" envDefault:"https"`
	Target   Target `env:"TARGET" envDefault:"app"`
	LogFile  string `env:"LOG_FILE"`

	// Sessions
	CsrfKey          Secret        `env:"CSRF_KEY"`
	AuthKey          Secret        `env:"AUTH_KEY"`
	EncryptionKey    Secret        `env:"ENCRYPTION_KEY"`
	UserSessionName  string        `env:"USER_SESSION_NAME" envDefault:"_hub"`
	FlashSessionName string        `env:"FLASH_SESSION_NAME" envDefault:"_hub_flash"`
	CsrfSessionName  string        `env:"CSRF_SESSION_NAME" envDefault:"_hub_csrf"`
	SessionMaxAge    time.Duration `env:"SESSION_MAX_AGE" envDefault:"720h"`

	// API tokens
	JWTSecret Secret        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"1h"`

	// App settings
	AppName        string `env:"APP_NAME" envDefault:"Media Hub"`
	AppDescription string `env:"APP_DESCRIPTION"`
	Domain         string `env:"DOMAIN" envDefault:"localhost:5000"`

	// Admins and access
	AdminEmails      []string `env:"ADMIN_EMAILS" envSeparator:","`
	AllowMemberLogin bool     `env:"ALLOW_MEMBER_LOGIN" envDefault:"false"`

	// Accounts of the memory store driver, email:bcrypt-hash pairs
	LocalUsers map[string]string `env:"LOCAL_USERS" envSeparator:"," envKeyValSeparator:":"`

	// Submissions
	StoreDriver   StoreDriver   `env:"STORE_DRIVER" envDefault:"postgres"`
	StoreTimeout  time.Duration `env:"STORE_TIMEOUT" envDefault:"10s"`
	StrictVideoID bool          `env:"STRICT_VIDEO_ID" envDefault:"true"`

	// Google APIs settings
	YouTubeAPIKey string `env:"YOUTUBE_API_KEY"`

	// Cloudflare R2
	R2BackupBucketName string `env:"R2_BACKUP_BUCKET_NAME"`
	R2AccountId        string `env:"R2_ACCOUNT_ID"`
	R2AccessKeyId      string `env:"R2_ACCESS_KEY_ID"`
	R2SecretAccessKey  string `env:"R2_SECRET_ACCESS_KEY"`
	BackupKeep         int    `env:"BACKUP_KEEP" envDefault:"7"`

	// Redis
	RedisHost     string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int           `env:"REDIS_PORT" envDefault:"6379"`
	RedisUsername string        `env:"REDIS_USERNAME"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	CacheTimeout  time.Duration `env:"CACHE_TIMEOUT" envDefault:"3600s"`

	// Postgres
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432"`
	DBDatabase string `env:"DB_DATABASE"`
	DBUsername string `env:"DB_USERNAME"`
	DBPassword string `env:"DB_PASSWORD"`
	DBMaxConns int32  `env:"DB_MAX_CONNS" envDefault:"4"`

	// Local app host and port
	Host string `env:"HOST" envDefault:"localhost"`
	Port int    `env:"PORT" envDefault:"5000"`
}

// New creates new config object
func New() *Config {
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("failed to parse the config; %v", err)
	}
	return cfg
}

// Parse parses the config from the environment and validates it
func Parse() (*Config, error) {

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	numCPU := runtime.NumCPU()
	if numCPU > math.MaxInt32 || numCPU < math.MinInt32 {
		return nil, fmt.Errorf("failed to get proper CPU cores count: %d", numCPU)
	}

	// Cap the DBMaxConns to the number of cores
	cfg.DBMaxConns = max(cfg.DBMaxConns, int32(numCPU))

	// Normalize the admin allow-list
	emails := make([]string, 0, len(cfg.AdminEmails))
	for _, email := range cfg.AdminEmails {
		if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
			emails = append(emails, email)
		}
	}
	cfg.AdminEmails = emails

	switch cfg.StoreDriver {
	case Postgres, Memory:
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	if cfg.StoreTimeout <= 0 {
		return nil, fmt.Errorf("store timeout must be positive, got %s", cfg.StoreTimeout)
	}

	if cfg.Target != App {
		return &cfg, nil
	}

	// Check if the app has all the necessary secrets
	secrets := map[string]Secret{
		"CSRF_KEY":       cfg.CsrfKey,
		"AUTH_KEY":       cfg.AuthKey,
		"ENCRYPTION_KEY": cfg.EncryptionKey,
		"JWT_SECRET":     cfg.JWTSecret,
	}

	for name, secret := range secrets {
		if len(secret.Bytes) == 0 {
			return nil, fmt.Errorf("empty or no secret key defined in env: %s", name)
		}
	}

	return &cfg, nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
// It's called by the env library to decode the Secret,
func (s *Secret) UnmarshalText(text []byte) error {

	s.Bytes = make([]byte, base64.StdEncoding.DecodedLen(len(text)))
	n, err := base64.StdEncoding.Decode(s.Bytes, text)
	if err != nil {
		return fmt.Errorf("error decoding a secret key; %w", err)
	}

	s.Bytes = s.Bytes[:n]
	return nil
}
