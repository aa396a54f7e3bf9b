package keystore

import (
	"strings"

	"github.com/gobeaver/beaver-rsa/config"
)

// Config holds keystore configuration
type Config struct {
	// Driver specifies the backend: "memory", "redis", "sql" or "s3"
	Driver string `env:"KEYSTORE_DRIVER,default:memory"`

	// Redis specific settings
	Host     string `env:"KEYSTORE_HOST,default:localhost"`
	Port     string `env:"KEYSTORE_PORT,default:6379"`
	Password string `env:"KEYSTORE_PASSWORD"`
	Database int    `env:"KEYSTORE_DATABASE,default:0"`

	// Connection URL. For redis it overrides host/port/password; for sql it
	// replaces the BEAVER_DB_* settings.
	URL string `env:"KEYSTORE_URL"`

	MaxRetries int `env:"KEYSTORE_MAX_RETRIES,default:3"`
	PoolSize   int `env:"KEYSTORE_POOL_SIZE,default:10"`

	// TLS settings for Redis
	UseTLS   bool   `env:"KEYSTORE_USE_TLS,default:false"`
	CertFile string `env:"KEYSTORE_CERT_FILE"`
	KeyFile  string `env:"KEYSTORE_KEY_FILE"`

	// Memory specific
	MaxKeys int `env:"KEYSTORE_MAX_KEYS,default:0"` // 0 means no limit

	// SQL specific
	Table string `env:"KEYSTORE_TABLE,default:keypairs"`

	// S3 specific
	S3Region          string `env:"KEYSTORE_S3_REGION,default:us-east-1"`
	S3Bucket          string `env:"KEYSTORE_S3_BUCKET"`
	S3Endpoint        string `env:"KEYSTORE_S3_ENDPOINT"`
	S3AccessKeyID     string `env:"KEYSTORE_S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"KEYSTORE_S3_SECRET_ACCESS_KEY"`
	S3ForcePathStyle  bool   `env:"KEYSTORE_S3_FORCE_PATH_STYLE,default:false"`

	// Common settings
	KeyPrefix string `env:"KEYSTORE_KEY_PREFIX,default:rsa:"`
	Namespace string `env:"KEYSTORE_NAMESPACE"`

	Debug bool `env:"KEYSTORE_DEBUG,default:false"`
}

// GetConfig loads configuration from environment variables
func GetConfig(opts ...config.LoadOptions) (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg, opts...); err != nil {
		return nil, err
	}

	cfg.Driver = strings.ToLower(strings.TrimSpace(cfg.Driver))

	return cfg, nil
}
