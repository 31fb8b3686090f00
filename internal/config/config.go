package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	StorageDriverMinio = "minio"
	StorageDriverS3    = "s3"
)

type Config struct {
	Env      Env
	Server   ServerConfig
	Log      LogConfig
	Storage  StorageConfig
	Minio    MinioConfig
	S3       S3Config
	Upload   FileUploadConfig
	NATS     NATSConfig
	Metrics  MetricsConfig
	Database DatabaseConfig
}

type Env struct {
	Env        string `envconfig:"ENV" default:"DEV"`
	Service    string `envconfig:"SERVICE_NAME" default:"webapp"`
	InstanceID string `envconfig:"INSTANCE_ID"`
}

type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"localhost"`
	Port            string        `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"60s"`
	RequestTimeout  time.Duration `envconfig:"SERVER_REQUEST_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}

type StorageConfig struct {
	Driver string `envconfig:"STORAGE_DRIVER" default:"minio"`
}

type MinioConfig struct {
	Endpoint   string `envconfig:"MINIO_ENDPOINT"`
	BucketName string `envconfig:"MINIO_BUCKET_NAME"`
	AccessKey  string `envconfig:"MINIO_ACCESS_KEY"`
	SecretKey  string `envconfig:"MINIO_SECRET_KEY"`
	UseSSL     bool   `envconfig:"MINIO_USE_SSL" default:"false"`
}

type S3Config struct {
	Region          string `envconfig:"AWS_REGION" default:"us-east-1"`
	BucketName      string `envconfig:"S3_BUCKET_NAME"`
	Endpoint        string `envconfig:"S3_ENDPOINT"`
	AccessKeyID     string `envconfig:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	UsePathStyle    bool   `envconfig:"S3_USE_PATH_STYLE" default:"false"`
}

type FileUploadConfig struct {
	MaxSize   int64 `envconfig:"UPLOAD_MAX_SIZE" default:"10485760"`  // 10MB
	MaxMemory int64 `envconfig:"UPLOAD_MAX_MEMORY" default:"4194304"` // 4MB, rest spills to disk
}

// NATSConfig configures the consistency event publisher. An empty URL disables it.
type NATSConfig struct {
	URL           string        `envconfig:"NATS_URL"`
	ClientName    string        `envconfig:"NATS_CLIENT_NAME" default:"webapp"`
	StreamName    string        `envconfig:"NATS_STREAM_NAME" default:"FILES"`
	SubjectPrefix string        `envconfig:"NATS_SUBJECT_PREFIX" default:"files"`
	PublishWait   time.Duration `envconfig:"NATS_PUBLISH_WAIT" default:"2s"`
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"METRICS_ENABLED" default:"false"`
	Addr    string `envconfig:"METRICS_ADDR" default:":9090"`
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" required:"true"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	Name           string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"10"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

// DSN returns a lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks settings whose requirement depends on other settings
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case StorageDriverMinio:
		if c.Minio.Endpoint == "" {
			errs = append(errs, errors.New("MINIO_ENDPOINT is required"))
		}
		if c.Minio.BucketName == "" {
			errs = append(errs, errors.New("MINIO_BUCKET_NAME is required"))
		}
		if c.Minio.AccessKey == "" || c.Minio.SecretKey == "" {
			errs = append(errs, errors.New("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required"))
		}
	case StorageDriverS3:
		if c.S3.BucketName == "" {
			errs = append(errs, errors.New("S3_BUCKET_NAME is required"))
		}
		if (c.S3.AccessKeyID == "") != (c.S3.SecretAccessKey == "") {
			errs = append(errs, errors.New("S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY must be set together"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER: unsupported driver %q (expected %s or %s)", c.Storage.Driver, StorageDriverMinio, StorageDriverS3))
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT: unsupported format %q", c.Log.Format))
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	if c.Upload.MaxSize <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_SIZE must be positive"))
	}

	return errors.Join(errs...)
}
