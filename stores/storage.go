package stores

import (
	"context"

	"festive-foliage/config"
	"festive-foliage/core"
	"festive-foliage/stores/aws"
	"festive-foliage/stores/filesystem"
	"festive-foliage/stores/memory"
	"festive-foliage/stores/minio"
	"festive-foliage/stores/redis"
	"festive-foliage/stores/sqlite"

	"github.com/sirupsen/logrus"
)

// GetMedium builds the document medium selected by cfg.StorageType. Remote
// media fall back to the local filesystem under cfg.LocalStoragePath.
func GetMedium(cfg config.Config) core.Medium {
	var medium core.Medium

	storageField := logrus.Fields{
		"storageType": cfg.StorageType,
	}

	local := func() core.Medium {
		storageField["basePath"] = cfg.LocalStoragePath
		return filesystem.NewStore(cfg.LocalStoragePath)
	}

	switch cfg.StorageType {
	case "memory":
		medium = memory.NewStore()
	case "sqlite":
		storageField["dataSourceName"] = cfg.DataSourceName
		medium = sqlite.NewStore(cfg.DataSourceName)
	case "s3":
		if cfg.S3BucketName == "" {
			logrus.Fatal("S3_BUCKET_NAME environment variable must be set for s3 storage type")
		}
		storageField["bucketName"] = cfg.S3BucketName
		medium = WithFallback("s3", aws.NewStore(cfg.S3BucketName, cfg.S3Prefix), local())
	case "minio":
		if cfg.MinioEndpoint == "" {
			logrus.Fatal("MINIO_ENDPOINT environment variable must be set for minio storage type")
		}
		storageField["endpoint"] = cfg.MinioEndpoint
		storageField["bucketName"] = cfg.MinioBucket
		remote, err := minio.NewStore(context.Background(), cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			logrus.WithError(err).Warn("MinIO unavailable, using local storage only")
			medium = local()
			break
		}
		medium = WithFallback("minio", remote, local())
	case "redis":
		remote, err := redis.NewStore(cfg.RedisURL)
		if err != nil {
			logrus.WithError(err).Warn("Redis unavailable, using local storage only")
			medium = local()
			break
		}
		medium = WithFallback("redis", remote, local())
	default:
		storageField["storageType"] = "filesystem"
		medium = local()
	}

	logrus.WithFields(storageField).Info("Use storage")
	return medium
}
