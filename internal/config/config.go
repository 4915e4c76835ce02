package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env             string
	ServerAddr      string
	MongoURI        string
	MongoDB         string
	FrontendOrigins []string

	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string
	JWTSecret         string
	TokenTTL          time.Duration

	RedisURL        string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CacheTTLSeconds int

	StorageDriver       string
	UploadDir           string
	PublicStoragePrefix string
	S3Endpoint          string
	S3AccessKey         string
	S3SecretKey         string
	S3Bucket            string

	MaxGalleryUploadBytes    int64
	MaxAttachmentUploadBytes int64
	RequestTimeout           time.Duration
	UploadTimeout            time.Duration

	RateLimitContact   int
	RateLimitLogin     int
	RateLimitWindowSec int

	BrevoAPIKey      string
	BrevoSenderEmail string
	BrevoSenderName  string
	BrevoSandbox     bool
	ContactInbox     string

	LogLevel      string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int

	Timezone *time.Location
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func Load() (*Config, error) {
	// Variables already present in the environment take precedence over .env.
	_ = godotenv.Load(".env")

	loc, err := time.LoadLocation(getEnv("TZ", "Africa/Lubumbashi"))
	if err != nil {
		return nil, err
	}

	mongoURI := getEnv("MONGO_URI", "mongodb://localhost:27017/cajj")
	mongoDB := getEnv("MONGO_DB", "")
	if mongoDB == "" {
		mongoDB = mongoDBFromURI(mongoURI)
	}
	if mongoDB == "" {
		mongoDB = "cajj"
	}

	cfg := &Config{
		Env:             getEnv("APP_ENV", "development"),
		ServerAddr:      getEnv("SERVER_ADDR", ":4000"),
		MongoURI:        mongoURI,
		MongoDB:         mongoDB,
		FrontendOrigins: splitList(getEnv("FRONTEND_ORIGINS", "http://localhost:5173")),

		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		TokenTTL:          time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,

		RedisURL:        getEnv("REDIS_URL", ""),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		CacheTTLSeconds: getEnvInt("CACHE_TTL_SECONDS", 60),

		StorageDriver:       strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
		UploadDir:           getEnv("UPLOAD_DIR", "./storage/app/public"),
		PublicStoragePrefix: storagePrefix(getEnv("PUBLIC_STORAGE_PREFIX", "/storage")),
		S3Endpoint:          getEnv("S3_ENDPOINT", ""),
		S3AccessKey:         getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:         getEnv("S3_SECRET_KEY", ""),
		S3Bucket:            getEnv("S3_BUCKET", "cajj"),

		MaxGalleryUploadBytes:    int64(getEnvInt("MAX_GALLERY_UPLOAD_MB", 50)) << 20,
		MaxAttachmentUploadBytes: int64(getEnvInt("MAX_ATTACHMENT_UPLOAD_MB", 100)) << 20,
		RequestTimeout:           time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
		UploadTimeout:            time.Duration(getEnvInt("UPLOAD_TIMEOUT_SECONDS", 600)) * time.Second,

		RateLimitContact:   getEnvInt("RATE_LIMIT_CONTACT", 5),
		RateLimitLogin:     getEnvInt("RATE_LIMIT_LOGIN", 10),
		RateLimitWindowSec: getEnvInt("RATE_LIMIT_WINDOW_SEC", 60),

		BrevoAPIKey:      getEnv("BREVO_API_KEY", ""),
		BrevoSenderEmail: getEnv("BREVO_SENDER_EMAIL", ""),
		BrevoSenderName:  getEnv("BREVO_SENDER_NAME", "CAJJ ASBL"),
		BrevoSandbox:     getEnvBool("BREVO_SANDBOX", false),
		ContactInbox:     getEnv("CONTACT_INBOX", ""),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       getEnv("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 50),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 30),

		Timezone: loc,
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func mongoDBFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	db := strings.Trim(u.Path, "/")
	if db == "" {
		return ""
	}
	// mongodb URIs sometimes include extra path segments; we only support the first one as db name.
	if idx := strings.Index(db, "/"); idx >= 0 {
		db = db[:idx]
	}
	return db
}

// storagePrefix normalises the public file path to "/name". An empty or bare
// "/" value means "/storage".
func storagePrefix(raw string) string {
	p := strings.Trim(raw, "/ ")
	if p == "" {
		return "/storage"
	}
	return "/" + p
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
