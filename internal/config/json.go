package config

import (
	"encoding/json"
	"os"

	"todokeeper/internal/flagx"
)

// JsonConfig is an intermediate DTO used only for reading JSON
// configuration files. Pointer fields distinguish "absent" from
// "explicitly false/empty" so a partial file only overrides what it
// actually sets.
type JsonConfig struct {
	DatabaseDSN        *string `json:"database_dsn"`
	AutoBootstrapAdmin *bool   `json:"auto_bootstrap_admin"`
	BootstrapAlias     *string `json:"bootstrap_alias"`
	BootstrapPassword  *string `json:"bootstrap_password"`
	AllowAdminOnAdmin  *bool   `json:"allow_admin_on_admin"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config flags; if
// neither is set, no file is loaded. An unreadable or invalid file panics:
// a misconfigured store is a fatal startup condition.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.AutoBootstrapAdmin != nil {
		config.AutoBootstrapAdmin = *c.AutoBootstrapAdmin
	}
	if c.BootstrapAlias != nil {
		config.BootstrapAlias = *c.BootstrapAlias
	}
	if c.BootstrapPassword != nil {
		config.BootstrapPassword = *c.BootstrapPassword
	}
	if c.AllowAdminOnAdmin != nil {
		config.AllowAdminOnAdmin = *c.AllowAdminOnAdmin
	}
}
