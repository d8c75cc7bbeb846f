package config

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "SHOPLANE"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "SHOPLANE_APP_ENV"
	EnvPort   = "SHOPLANE_APP_PORT"

	EnvDBDSN  = "SHOPLANE_DB_DSN"
	EnvDBHost = "SHOPLANE_DB_HOST"
	EnvDBUser = "SHOPLANE_DB_USER"
	EnvDBName = "SHOPLANE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
