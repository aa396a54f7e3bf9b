package keystore

import (
	"context"
	"time"

	"github.com/gobeaver/beaver-rsa/database"
	"github.com/gobeaver/beaver-rsa/keystore/driver/memory"
	"github.com/gobeaver/beaver-rsa/keystore/driver/redis"
	"github.com/gobeaver/beaver-rsa/keystore/driver/s3"
	"github.com/gobeaver/beaver-rsa/keystore/driver/sql"
)

// Driver registration functions

func memoryRegister(cfg Config) (Backend, error) {
	return memory.New(memory.Config{
		MaxKeys:   cfg.MaxKeys,
		KeyPrefix: cfg.KeyPrefix,
		Namespace: cfg.Namespace,
	})
}

func redisRegister(cfg Config) (Backend, error) {
	return redis.New(redis.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		Database: cfg.Database,
		URL:      cfg.URL,

		MaxRetries: cfg.MaxRetries,
		PoolSize:   cfg.PoolSize,

		UseTLS:   cfg.UseTLS,
		CertFile: cfg.CertFile,
		KeyFile:  cfg.KeyFile,

		KeyPrefix: cfg.KeyPrefix,
		Namespace: cfg.Namespace,
	})
}

func sqlRegister(cfg Config) (Backend, error) {
	var dbCfg database.Config
	if cfg.URL != "" {
		dbCfg = database.Config{URL: cfg.URL}
	} else {
		loaded, err := database.GetConfig()
		if err != nil {
			return nil, err
		}
		dbCfg = *loaded
	}

	return sql.New(sql.Config{
		Database:  dbCfg,
		Table:     cfg.Table,
		KeyPrefix: namespaced(cfg),
	})
}

func s3Register(cfg Config) (Backend, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s3.New(ctx, s3.Config{
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		ForcePathStyle:  cfg.S3ForcePathStyle,
		KeyPrefix:       namespaced(cfg),
	})
}

func namespaced(cfg Config) string {
	if cfg.Namespace == "" {
		return cfg.KeyPrefix
	}
	return cfg.Namespace + ":" + cfg.KeyPrefix
}
