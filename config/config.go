package config

import (
	"os"
	"strconv"
)

// Config is everything the server reads from the environment.
type Config struct {
	StorageType      string
	LocalStoragePath string
	DataSourceName   string

	S3BucketName string
	S3Prefix     string

	RedisURL string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	AdminUser string
	AdminPass string

	// PublicBlockList opens GET /api/blocks to anonymous callers.
	PublicBlockList bool
}

func Load() Config {
	return Config{
		StorageType:      getenv("STORAGE_TYPE", "filesystem"),
		LocalStoragePath: getenv("LOCAL_STORAGE_PATH", "./data"),
		DataSourceName:   getenv("DATA_SOURCE_NAME", "festive.db"),
		S3BucketName:     getenv("S3_BUCKET_NAME", ""),
		S3Prefix:         getenv("S3_PREFIX", ""),
		RedisURL:         getenv("REDIS_URL", "redis://localhost:6379/0"),
		MinioEndpoint:    getenv("MINIO_ENDPOINT", ""),
		MinioAccessKey:   getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey:   getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:      getenv("MINIO_BUCKET", "festive"),
		MinioUseSSL:      getenvBool("MINIO_USE_SSL", true),
		AdminUser:        os.Getenv("ADMIN_USER"),
		AdminPass:        os.Getenv("ADMIN_PASS"),
		PublicBlockList:  getenvBool("PUBLIC_BLOCK_LIST", false),
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
