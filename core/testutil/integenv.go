// Package testutil provides shared helpers for integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var (
	integEnvOnce sync.Once
	integEnvVars map[string]string
)

// IntegEnvFile is the optional dotenv file consulted by IntegEnv.
func IntegEnvFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "osdd-shortcut", ".env.integ-test")
}

func loadIntegEnvFile() map[string]string {
	integEnvOnce.Do(func() {
		integEnvVars = map[string]string{}
		path := IntegEnvFile()
		if path == "" {
			return
		}
		vals, err := godotenv.Read(path)
		if err != nil {
			return
		}
		integEnvVars = vals
	})
	return integEnvVars
}

// IntegEnv returns the value of key from the environment, falling back to
// ~/.config/osdd-shortcut/.env.integ-test if the env var is not set.
func IntegEnv(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return loadIntegEnvFile()[key]
}
