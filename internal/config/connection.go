package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ConnectionStringVariable names the environment variable holding the Dataverse connection string.
const ConnectionStringVariable = "DataverseConnectionString"

// ErrConnectionNotConfigured is returned when the connection string variable is unset or empty.
var ErrConnectionNotConfigured = errors.New("environment variable " + ConnectionStringVariable + " is not set")

// Connection holds the values needed to open a Dataverse session.
type Connection struct {
	ConnectionString string `env:"DataverseConnectionString,required,notEmpty"`
}

// LoadConnection reads the connection settings from the environment.
// Variables from envFile are applied first without overriding the ones already set;
// a missing envFile is ignored.
func LoadConnection(envFile string) (*Connection, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	var conn Connection
	if err := env.Parse(&conn); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionNotConfigured, err)
	}

	return &conn, nil
}
