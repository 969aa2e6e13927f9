package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	cfg := FromViper(newViper())

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "reflet.db", cfg.DatabasePath)
	assert.Equal(t, StorageFS, cfg.Storage.Backend)
	assert.Equal(t, "/uploads", cfg.Storage.UploadURLPath)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.True(t, cfg.CSRFEnabled)
	assert.Equal(t, 180*24*time.Hour, cfg.Retention.MessageRetention())
}

func TestFromViperReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("DATABASE_DSN", "host=db user=reflet")
	t.Setenv("STORAGE_BACKEND", "s3")
	t.Setenv("S3_BUCKET", "images")
	t.Setenv("S3_PUBLIC_BASE_URL", "https://cdn.example.org/")
	t.Setenv("UPLOAD_URL_PATH", "media/")
	t.Setenv("MAX_UPLOAD_MB", "5")
	t.Setenv("SUPER_ROOT_EMAIL", "  Admin@Example.org ")
	t.Setenv("MESSAGE_RETENTION_DAYS", "-3")

	cfg := FromViper(newViper())

	require.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, "host=db user=reflet", cfg.DatabaseDSN)
	assert.Equal(t, StorageS3, cfg.Storage.Backend)
	assert.Equal(t, "images", cfg.Storage.S3.Bucket)
	assert.Equal(t, "https://cdn.example.org", cfg.Storage.S3.PublicBaseURL)
	assert.Equal(t, "/media", cfg.Storage.UploadURLPath)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
	assert.Equal(t, "admin@example.org", cfg.SuperRootEmail)
	assert.Zero(t, cfg.Retention.MessageRetention())
}

func TestFromViperFallsBackOnUnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "mysql")
	t.Setenv("STORAGE_BACKEND", "gcs")

	cfg := FromViper(newViper())

	assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, StorageFS, cfg.Storage.Backend)
}
