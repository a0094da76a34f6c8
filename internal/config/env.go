package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables naming the hosted project
const (
	EnvSupabaseKey = "SUPABASE_PUBLISHABLE_KEY"
	EnvSupabaseURL = "SUPABASE_URL"
)

// envFiles are read in order; earlier files win, and the real environment
// always wins over both
var envFiles = []string{".env.local", ".env"}

// ErrMissingSupabaseEnv is returned when the project coordinates are not configured
var ErrMissingSupabaseEnv = errors.New("missing Supabase environment variables")

// LoadEnvFiles loads the dotenv files found in dir without overriding
// variables that are already set. Missing files are skipped.
func LoadEnvFiles(dir string) error {
	for _, name := range envFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// SupabaseEnv holds the project coordinates read from the environment
type SupabaseEnv struct {
	PublishableKey string
	URL            string
}

// ReadSupabaseEnv returns the project coordinates, failing when either is unset
func ReadSupabaseEnv() (SupabaseEnv, error) {
	env := SupabaseEnv{
		PublishableKey: strings.TrimSpace(os.Getenv(EnvSupabaseKey)),
		URL:            strings.TrimSpace(os.Getenv(EnvSupabaseURL)),
	}

	var missing []string
	if env.URL == "" {
		missing = append(missing, EnvSupabaseURL)
	}
	if env.PublishableKey == "" {
		missing = append(missing, EnvSupabaseKey)
	}
	if len(missing) > 0 {
		return SupabaseEnv{}, fmt.Errorf("%w: %s", ErrMissingSupabaseEnv, strings.Join(missing, ", "))
	}
	return env, nil
}
