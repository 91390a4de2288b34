package config

import (
	"os"
	"strconv"
)

// parseEnv overlays configuration from environment variables. Unset
// variables leave the current value untouched.
//
// Recognized variables:
//
//	DATABASE_DSN          PostgreSQL DSN
//	AUTO_BOOTSTRAP_ADMIN  "1"/"true"/"0"/"false"
//	BOOTSTRAP_ALIAS       initial admin alias
//	BOOTSTRAP_PASSWORD    initial admin password
//	ALLOW_ADMIN_ON_ADMIN  "1"/"true"/"0"/"false"
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("AUTO_BOOTSTRAP_ADMIN"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			config.AutoBootstrapAdmin = b
		}
	}
	if v, ok := os.LookupEnv("BOOTSTRAP_ALIAS"); ok {
		config.BootstrapAlias = v
	}
	if v, ok := os.LookupEnv("BOOTSTRAP_PASSWORD"); ok {
		config.BootstrapPassword = v
	}
	if v, ok := os.LookupEnv("ALLOW_ADMIN_ON_ADMIN"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			config.AllowAdminOnAdmin = b
		}
	}
}
