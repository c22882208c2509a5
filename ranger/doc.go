/*
Package ranger initializes and manages roadtrip with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type, constructed with [New].
Components passed in as a [RangerOption] are used as is;
everything else is configured from environment variables.

[*Ranger.Guide] begins the web server.
By default, [*Ranger.Guide] listens on [DefaultPort] (:3000).
Stop that web server with [*Ranger.Cancel] or send a signal [*Ranger.Guide] listens for.
Either way, the document store is closed once the server shuts down.

# Configuration

Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - BASE_URL: the base URL the application runs on; default: http://localhost:3000
  - DATABASE_HOST: the host the database is running on; default: localhost
  - DATABASE_NAME: the name of the database
  - DATABASE_PASSWORD: the password for authenticating a connection to the database
  - DATABASE_PORT: the port the database is listening on; default: 5432
  - DATABASE_SSLMODE: the sslmode of the connection to the database; default: prefer
  - DATABASE_URL: the fully-qualified connection string for connecting to the database; replaces all other DATABASE_* env vars
  - DATABASE_USER: the user for authenticating a connection to the database
  - DOCUMENT_STORE: one of memory, mongo or postgres; default: memory in DEVELOPMENT and TESTING, mongo otherwise
  - ENVIRONMENT: the environment the application is running in; cf. [roadtrip.Environment]
  - GOOGLE_CLIENT_ID: the OAuth client ID; without it, DEVELOPMENT and TESTING log everyone in as a stub user
  - GOOGLE_CLIENT_SECRET: the OAuth client secret
  - GOOGLE_REDIRECT_URL: the OAuth callback; default: BASE_URL/auth/google/callback
  - HOST: the interface the application listens on; default: all of them
  - JWT_KEY: the key signing the OAuth state parameter
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - MONGO_DATABASE: the MongoDB database holding trips and stops; default: roadtrip
  - MONGO_URI: the MongoDB connection string
  - PORT: the port the application should listen on; default: :3000
  - REDIS_PASSWORD: the password for authenticating to Redis; overrides the one in REDIS_URL
  - REDIS_URL: a redis:// URL; when set, sessions and idempotent responses are kept in Redis
  - SENTRY_DSN: when set, warnings and errors are reported to Sentry
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 5s
  - SESSION_AUTH_KEY: a hex-encoded key for authenticating cookies; cf. [encoding/hex]
  - SESSION_ENCRYPTION_KEY: a hex-encoded key for encrypting cookies; cf. [encoding/hex]
  - SESSION_MAX_AGE: the number of seconds a session lives; default: 604800
  - SESSION_NAME: the name of the session cookie; default: roadtrip
  - STATIC_ROOT: the directory holding json/, app/json/, img/ and dist/road-trip/; default: .

For the database tests, DATABASE_TEST_URL or the DATABASE_TEST_HOST family of env vars name a throwaway database.
*/
package ranger
