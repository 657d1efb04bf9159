package config // package config loads application configuration from environment variables

import (
	"log" // log is used to report configuration errors and halt execution
	"os"  // os provides access to environment variables
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable: strings for identifiers, endpoints and secrets,
// a bool for the object-store TLS switch.
type Config struct {
	Env  string // application environment (e.g. "dev", "prod")
	Port string // HTTP port to listen on

	MongoURI string // MongoDB connection string
	MongoDB  string // database holding the document collections

	ProviderJWKSURL    string // identity provider JWKS endpoint
	ProviderProfileURL string // identity provider profile endpoint base

	S3Endpoint  string // object store endpoint host[:port]
	S3AccessKey string // object store access key
	S3SecretKey string // object store secret key
	S3Region    string // object store region
	S3Bucket    string // bucket holding course media
	S3UseSSL    bool   // whether to talk to the object store over TLS
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:                must("APP_ENV"),
		Port:               must("APP_PORT"),
		MongoURI:           must("MONGO_URI"),
		MongoDB:            must("MONGO_DB"),
		ProviderJWKSURL:    must("PROVIDER_JWKS_URL"),
		ProviderProfileURL: must("PROVIDER_PROFILE_URL"),
		S3Endpoint:         must("S3_ENDPOINT"),
		S3AccessKey:        must("S3_ACCESS_KEY"),
		S3SecretKey:        must("S3_SECRET_KEY"),
		S3Region:           envStr("S3_REGION", "us-east-1"),
		S3Bucket:           must("S3_BUCKET"),
		S3UseSSL:           envBool("S3_USE_SSL", true),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
