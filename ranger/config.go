package ranger

import (
	"os"
	"time"

	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/docstore/mongo"
	"github.com/xy-planning-network/roadtrip/postgres"
)

const (
	// Base URL defaults
	BaseURLEnvVar = "BASE_URL"

	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar = "LOG_LEVEL"

	// Document store defaults
	documentStoreEnvVar = "DOCUMENT_STORE"
	storeMemory         = "memory"
	storeMongo          = "mongo"
	storePostgres       = "postgres"
	mongoURIEnvVar      = "MONGO_URI"
	mongoDBEnvVar       = "MONGO_DATABASE"
	defaultMongoDB      = "roadtrip"

	// Database defaults
	dbHostEnvVar     = "DATABASE_HOST"
	defaultDBHost    = "localhost"
	dbNameEnvVar     = "DATABASE_NAME"
	dbPassEnvVar     = "DATABASE_PASSWORD"
	dbPortEnvVar     = "DATABASE_PORT"
	defaultDBPort    = "5432"
	dbSSLModeEnvVar  = "DATABASE_SSLMODE"
	defaultDBSSLMode = "prefer"
	dbURLEnvVar      = "DATABASE_URL"
	dbUserEnvVar     = "DATABASE_USER"

	// OAuth defaults
	googleClientIDEnvVar     = "GOOGLE_CLIENT_ID"
	googleClientSecretEnvVar = "GOOGLE_CLIENT_SECRET"
	googleRedirectURLEnvVar  = "GOOGLE_REDIRECT_URL"
	jwtKeyEnvVar             = "JWT_KEY"
	callbackPath             = "/auth/google/callback"

	// Redis defaults
	redisURLEnvVar  = "REDIS_URL"
	redisPassEnvVar = "REDIS_PASSWORD"

	// Session defaults
	SessionAuthKeyEnvVar    = "SESSION_AUTH_KEY"
	SessionEncryptKeyEnvVar = "SESSION_ENCRYPTION_KEY"
	sessionNameEnvVar       = "SESSION_NAME"
	defaultSessionName      = "roadtrip"
	sessionMaxAgeEnvVar     = "SESSION_MAX_AGE"
	defaultSessionMaxAge    = 3600 * 24 * 7

	// Static asset defaults
	staticRootEnvVar  = "STATIC_ROOT"
	defaultStaticRoot = "."

	// Web server defaults
	DefaultHost               = "localhost"
	hostEnvVar                = "HOST"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second
	shutdownTimeout           = 5 * time.Second

	// Test defaults
	dbTestHostEnvVar     = "DATABASE_TEST_HOST"
	dbTestNameEnvVar     = "DATABASE_TEST_NAME"
	dbTestPassEnvVar     = "DATABASE_TEST_PASSWORD"
	dbTestPortEnvVar     = "DATABASE_TEST_PORT"
	defaultDBTestPort    = "5432"
	dbTestURLEnvVar      = "DATABASE_TEST_URL"
	dbTestUserEnvVar     = "DATABASE_TEST_USER"
	dbTestSSLModeEnvVar  = "DATABASE_TEST_SSLMODE"
	defaultDBTestSSLMode = "prefer"
)

// stubUser is who every login authenticates as when no OAuth client is configured
// in an environment that can use service stubs.
var stubUser = roadtrip.User{ID: "stub-user", DisplayName: "Road Tripper", Email: "stub@example.com"}

// NewPostgresConfig constructs a *postgres.CxnConfig appropriate to the given environment.
// Confer the DATABASE env vars for usage.
//
// In the testing environment, the DATABASE_TEST env vars are read instead
// and the returned config is only configured when one of them names a database.
func NewPostgresConfig(env roadtrip.Environment) *postgres.CxnConfig {
	if env.IsTesting() {
		if url := os.Getenv(dbTestURLEnvVar); url != "" {
			return &postgres.CxnConfig{IsTestDB: true, URL: url}
		}

		return &postgres.CxnConfig{
			Host:     os.Getenv(dbTestHostEnvVar),
			IsTestDB: true,
			Name:     os.Getenv(dbTestNameEnvVar),
			Password: os.Getenv(dbTestPassEnvVar),
			Port:     roadtrip.EnvVarOrString(dbTestPortEnvVar, defaultDBTestPort),
			SSLMode:  roadtrip.EnvVarOrString(dbTestSSLModeEnvVar, defaultDBTestSSLMode),
			User:     os.Getenv(dbTestUserEnvVar),
		}
	}

	if url := os.Getenv(dbURLEnvVar); url != "" {
		return &postgres.CxnConfig{URL: url}
	}

	return &postgres.CxnConfig{
		Host:     roadtrip.EnvVarOrString(dbHostEnvVar, defaultDBHost),
		Name:     os.Getenv(dbNameEnvVar),
		Password: os.Getenv(dbPassEnvVar),
		Port:     roadtrip.EnvVarOrString(dbPortEnvVar, defaultDBPort),
		SSLMode:  roadtrip.EnvVarOrString(dbSSLModeEnvVar, defaultDBSSLMode),
		User:     os.Getenv(dbUserEnvVar),
	}
}

// NewMongoConfig constructs a mongo.Config from the MONGO env vars.
func NewMongoConfig() mongo.Config {
	return mongo.Config{
		URI:      os.Getenv(mongoURIEnvVar),
		Database: roadtrip.EnvVarOrString(mongoDBEnvVar, defaultMongoDB),
	}
}
