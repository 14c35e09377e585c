package config

const (
	EnvPrefix = "FLOTILLA"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "FLOTILLA_DB_DSN"
	EnvDBHost = "FLOTILLA_DB_HOST"
	EnvDBUser = "FLOTILLA_DB_USER"
	EnvDBName = "FLOTILLA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
