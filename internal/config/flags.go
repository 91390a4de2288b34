package config

import (
	"flag"
	"os"

	"todokeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string            PostgreSQL DSN
//	-bootstrap=bool      auto-create an admin account on an empty store
//	-ba string           bootstrap admin alias
//	-bp string           bootstrap admin password
//	-admin-on-admin=bool allow admin operations on other admins
//
// The function first filters os.Args to only the flags it recognizes
// using flagx.FilterArgs, avoiding collisions with other components.
// Boolean flags must use the -flag=value form.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-bootstrap", "-ba", "-bp", "-admin-on-admin"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.BoolVar(&config.AutoBootstrapAdmin, "bootstrap", config.AutoBootstrapAdmin, "auto-create admin on empty store")
	fs.StringVar(&config.BootstrapAlias, "ba", config.BootstrapAlias, "bootstrap admin alias")
	fs.StringVar(&config.BootstrapPassword, "bp", config.BootstrapPassword, "bootstrap admin password")
	fs.BoolVar(&config.AllowAdminOnAdmin, "admin-on-admin", config.AllowAdminOnAdmin, "allow admin operations on other admins")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
