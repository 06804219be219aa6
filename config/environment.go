package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is loaded before the configuration
// so ENV: values can be kept out of the shell.
const DefaultEnvFile = ".env"

// LoadEnvFile adds the variables in envFile to the
// process environment. Variables that are already
// set keep their value and a missing file is ignored.
func LoadEnvFile(envFile string) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}

	return nil
}
