// Package envvar exposes typed lookups for environment variables.
package envvar

import (
	"os"
	"strconv"
	"time"
)

// GetInt returns the int value of the environment variable 'varName', if the variable is unset or not an int it
// returns 0, false.
func GetInt(varName string) (int, bool) {
	env, ok := os.LookupEnv(varName)
	if !ok {
		return 0, false
	}

	val, err := strconv.Atoi(env)
	if err != nil {
		return 0, false
	}

	return val, true
}

// GetDuration returns the duration value of the environment variable 'varName', if the variable is unset or not a
// valid duration string (e.g. "30s") it returns 0, false.
func GetDuration(varName string) (time.Duration, bool) {
	env, ok := os.LookupEnv(varName)
	if !ok {
		return 0, false
	}

	val, err := time.ParseDuration(env)
	if err != nil {
		return 0, false
	}

	return val, true
}
