// Package config provides configuration loading and validation for galleria.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (GALLERIA_ prefix)
//  4. CLI flags that were explicitly set
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
//	// Retrieve later
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// All config keys map to environment variables with GALLERIA_ prefix:
//   - server.port → GALLERIA_SERVER_PORT
//   - database.dsn → GALLERIA_DATABASE_DSN
//   - auth.secret.inline → GALLERIA_AUTH_SECRET_INLINE
//   - storage.s3.bucket → GALLERIA_STORAGE_S3_BUCKET
//
// # Configuration Structure
//
// The Config struct contains:
//   - Env: dev or prod (selects the log format)
//   - Server: port, public_base_url and max_upload_size
//   - Service: request_timeout and cleanup_timeout, in seconds
//   - Database: type, DSN, table names and auto_migrate
//   - Storage: filesystem path or s3 bucket settings
//   - Auth: the token signing secret (inline or file)
//   - CORS: cross-origin resource sharing settings
//   - Log: logging level
//
// # Validation
//
// Configuration is validated using struct tags plus a few cross-field rules:
//   - Port must be 1-65535
//   - Database type must be sqlite or postgres, and table names must be distinct identifiers
//   - Storage type must be filesystem (needs path) or s3 (needs bucket)
//   - Log level must be debug, info, warn, or error
//
// The signing secret is checked at server startup, not here, so that
// commands which never sign tokens can run without one.
package config
