package config

const (
	StorageMemory = "memory"
	StorageDiskv  = "diskv"
	StorageSQLite = "sqlite"
	StorageS3     = "s3"
)

// Environment variables holding S3 credentials. They are read from the
// process environment (optionally populated from .env), never from YAML.
const (
	EnvS3AccessKeyID     = "S3_ACCESS_KEY_ID"
	EnvS3SecretAccessKey = "S3_SECRET_ACCESS_KEY"
)
