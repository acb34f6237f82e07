package env

import "os"

// Get reads a process environment variable, treating unset and blank the
// same and returning the fallback for both.
func Get(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	return value
}
