package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr        string
	Port              string
	DatabaseDriver    string
	DatabasePath      string
	DatabaseDSN       string
	SessionSecret     string
	SecureCookies     bool
	CSRFEnabled       bool
	GinMode           string
	StaticDir         string
	TemplateGlob      string
	SiteName          string
	SiteBaseURL       string
	SuperRootEmail    string
	SuperRootPassword string
	MaxUploadBytes    int64
	Storage           StorageConfig
	Retention         RetentionConfig
	Log               LogConfig
}

// StorageConfig selects and configures the object storage backend.
type StorageConfig struct {
	Backend       string
	UploadDir     string
	UploadURLPath string
	S3            S3Config
}

// S3Config holds settings for S3-compatible object storage.
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	PublicBaseURL   string
	UsePathStyle    bool
}

// RetentionConfig drives the contact message purge job.
type RetentionConfig struct {
	MessageDays int
	Schedule    string
}

// LogConfig controls zerolog output.
type LogConfig struct {
	Level  string
	Format string
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	StorageFS = "fs"
	StorageS3 = "s3"
)

// Load reads an optional .env file, then environment variables, and fills in defaults.
func Load() AppConfig {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", "8080")
	v.SetDefault("database_driver", DriverSQLite)
	v.SetDefault("database_path", "reflet.db")
	v.SetDefault("session_secret", "reflet-dev-secret")
	v.SetDefault("secure_cookies", false)
	v.SetDefault("csrf_enabled", true)
	v.SetDefault("gin_mode", "release")
	v.SetDefault("static_dir", "./web/static")
	v.SetDefault("template_glob", "web/template/*/*.html")
	v.SetDefault("site_name", "Reflet du Gabon")
	v.SetDefault("site_base_url", "http://localhost:8080")
	v.SetDefault("max_upload_mb", 10)
	v.SetDefault("storage_backend", StorageFS)
	v.SetDefault("upload_dir", "web/static/uploads")
	v.SetDefault("upload_url_path", "/uploads")
	v.SetDefault("s3_region", "us-east-1")
	v.SetDefault("s3_use_path_style", false)
	v.SetDefault("message_retention_days", 180)
	v.SetDefault("message_retention_schedule", "0 3 * * *")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	return v
}

// FromViper builds the configuration from an already populated viper instance.
func FromViper(v *viper.Viper) AppConfig {
	port := trimmed(v, "port")
	if port == "" {
		port = "8080"
	}

	listenAddr := trimmed(v, "listen_addr")
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	driver := strings.ToLower(trimmed(v, "database_driver"))
	if driver != DriverPostgres {
		driver = DriverSQLite
	}

	backend := strings.ToLower(trimmed(v, "storage_backend"))
	if backend != StorageS3 {
		backend = StorageFS
	}

	maxUploadMB := v.GetInt64("max_upload_mb")
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}

	retentionDays := v.GetInt("message_retention_days")
	if retentionDays < 0 {
		retentionDays = 0
	}

	uploadURLPath := trimmed(v, "upload_url_path")
	if uploadURLPath == "" {
		uploadURLPath = "/uploads"
	}
	uploadURLPath = "/" + strings.Trim(uploadURLPath, "/")

	return AppConfig{
		ListenAddr:        listenAddr,
		Port:              port,
		DatabaseDriver:    driver,
		DatabasePath:      trimmed(v, "database_path"),
		DatabaseDSN:       trimmed(v, "database_dsn"),
		SessionSecret:     trimmed(v, "session_secret"),
		SecureCookies:     v.GetBool("secure_cookies"),
		CSRFEnabled:       v.GetBool("csrf_enabled"),
		GinMode:           trimmed(v, "gin_mode"),
		StaticDir:         trimmed(v, "static_dir"),
		TemplateGlob:      trimmed(v, "template_glob"),
		SiteName:          trimmed(v, "site_name"),
		SiteBaseURL:       strings.TrimRight(trimmed(v, "site_base_url"), "/"),
		SuperRootEmail:    strings.ToLower(trimmed(v, "super_root_email")),
		SuperRootPassword: trimmed(v, "super_root_password"),
		MaxUploadBytes:    maxUploadMB << 20,
		Storage: StorageConfig{
			Backend:       backend,
			UploadDir:     trimmed(v, "upload_dir"),
			UploadURLPath: uploadURLPath,
			S3: S3Config{
				Region:          trimmed(v, "s3_region"),
				Bucket:          trimmed(v, "s3_bucket"),
				AccessKeyID:     trimmed(v, "s3_access_key_id"),
				SecretAccessKey: trimmed(v, "s3_secret_access_key"),
				Endpoint:        trimmed(v, "s3_endpoint"),
				PublicBaseURL:   strings.TrimRight(trimmed(v, "s3_public_base_url"), "/"),
				UsePathStyle:    v.GetBool("s3_use_path_style"),
			},
		},
		Retention: RetentionConfig{
			MessageDays: retentionDays,
			Schedule:    trimmed(v, "message_retention_schedule"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(trimmed(v, "log_level")),
			Format: strings.ToLower(trimmed(v, "log_format")),
		},
	}
}

// MessageRetention returns the retention window as a duration; zero disables the purge.
func (c RetentionConfig) MessageRetention() time.Duration {
	return time.Duration(c.MessageDays) * 24 * time.Hour
}

func trimmed(v *viper.Viper, key string) string {
	return strings.TrimSpace(v.GetString(key))
}
