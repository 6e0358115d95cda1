// Package config loads command configuration from the environment.
// Commands declare their settings as structs with `env` tags following the
// GRIDFALL_ prefix convention (GRIDFALL_WORLD, GRIDFALL_DB, ...), parse the
// environment first, and then let flags override individual fields.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv fills the target struct from environment variables declared by
// its `env` tags, applying any `envDefault` values for unset variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
