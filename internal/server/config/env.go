package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvGRPCAddr          = "VAULT_GRPC_ADDR"
	EnvDatabaseDSN       = "DATABASE_URL"
	EnvJWTSecret         = "JWT_SECRET"
	EnvTokenValidity     = "VAULT_TOKEN_VALIDITY"
	EnvBcryptCost        = "VAULT_BCRYPT_COST"
	EnvS3User            = "VAULT_S3_USER"
	EnvS3Password        = "VAULT_S3_PASSWORD"
	EnvS3Bucket          = "VAULT_S3_BUCKET"
	EnvS3Region          = "VAULT_S3_REGION"
	EnvS3Endpoint        = "VAULT_S3_ENDPOINT"
	EnvExportURLValidity = "VAULT_EXPORT_URL_VALIDITY"
	EnvLogLevel          = "VAULT_LOG_LEVEL"
)

// dotenvFiles are loaded before the environment is read. Missing files are
// ignored and variables already set in the process win.
var dotenvFiles = []string{".env"}

// parseEnv overlays values from the environment. Malformed numeric or
// duration values panic.
func parseEnv(config *Config) {
	for _, f := range dotenvFiles {
		_ = godotenv.Load(f)
	}

	envString(&config.EndpointAddrGRPC, EnvGRPCAddr)
	envString(&config.DatabaseDSN, EnvDatabaseDSN)
	envString(&config.SecretKey, EnvJWTSecret)
	envString(&config.S3RootUser, EnvS3User)
	envString(&config.S3RootPassword, EnvS3Password)
	envString(&config.S3Bucket, EnvS3Bucket)
	envString(&config.S3Region, EnvS3Region)
	envString(&config.S3BaseEndpoint, EnvS3Endpoint)
	envString(&config.LogLevel, EnvLogLevel)

	envDuration(&config.AccessTokenValidityDuration, EnvTokenValidity)
	envDuration(&config.ExportURLValidity, EnvExportURLValidity)

	if v, ok := os.LookupEnv(EnvBcryptCost); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvBcryptCost, err))
		}
		config.BcryptCost = n
	}
}

func envString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func envDuration(dst *time.Duration, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("%s: %w", key, err))
	}
	*dst = d
}
