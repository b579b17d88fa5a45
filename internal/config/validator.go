package config

import (
	"fmt"

	oerrors "github.com/raise-the-bones/cli/internal/errors"
)

// Validate checks values that cannot be defaulted away.
func (c *Config) Validate() error {
	switch c.Deploy.DatabaseClient {
	case DatabaseClientPgx, DatabaseClientPsql:
	default:
		return oerrors.NewValidationError(
			fmt.Sprintf("unknown database client %q", c.Deploy.DatabaseClient),
			"deploy.database_client",
			fmt.Sprintf("Use %q or %q.", DatabaseClientPgx, DatabaseClientPsql),
		)
	}
	if c.CommandTimeout < 0 {
		return oerrors.NewValidationError("command_timeout must not be negative", "command_timeout", "")
	}
	return nil
}
