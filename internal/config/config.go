package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port           string
	Env            string
	DBDSN          string
	DBMaxOpenConns int
	StaticDir      string
	LogFile        string
	LogLevel       string
	BodyLimit      int
	SeedDemo       bool

	SigninRateMax    int
	SigninRateWindow time.Duration
	CORSOrigins      string

	AdminName     string
	AdminEmail    string
	AdminPassword string

	S3 S3Config
}

// S3Config switches uploads to a bucket when Bucket is set.
type S3Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
}

func (c Config) Development() bool { return c.Env == "development" }

func Load() Config {
	// .env is optional; real env vars win
	_ = godotenv.Load()

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("APP_ENV", "production"),
		DBDSN:          getEnv("DB_DSN", "storefront.db"), // sqlite file in project root
		DBMaxOpenConns: getInt("DB_MAX_OPEN_CONNS", 1),
		StaticDir:      getEnv("STATIC_DIR", "./static"),
		LogFile:        os.Getenv("LOG_FILE"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		BodyLimit:      getInt("BODY_LIMIT_MB", 8) << 20,
		SeedDemo:       getBool("SEED_DEMO"),

		SigninRateMax:    getInt("SIGNIN_RATE_MAX", 10),
		SigninRateWindow: getDuration("SIGNIN_RATE_WINDOW", time.Minute),
		CORSOrigins:      getEnv("CORS_ORIGINS", "*"),

		AdminName:     getEnv("ADMIN_NAME", "Admin"),
		AdminEmail:    strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		S3: S3Config{
			Bucket:          os.Getenv("S3_BUCKET"),
			Region:          getEnv("S3_REGION", "us-east-1"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			PublicBaseURL:   strings.TrimRight(os.Getenv("S3_PUBLIC_BASE_URL"), "/"),
		},
	}

	log.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Env).
		Str("db_dsn", cfg.DBDSN).
		Str("static_dir", cfg.StaticDir).
		Str("log_file", cfg.LogFile).
		Bool("s3", cfg.S3.Bucket != "").
		Msg("config loaded")
	return cfg
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getBool(key string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return b
}

func getDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
