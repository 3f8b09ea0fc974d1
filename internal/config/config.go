package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

const (
	defaultDBPath       = "./pricer.db"
	defaultPort         = "8080"
	defaultProfilesPath = "./profiles.yaml"
	defaultCacheTTL     = 6 * time.Hour
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Port         string
	DBPath       string
	ProfilesPath string

	// APIToken protects the pricing endpoints; empty disables auth (dev only).
	APIToken string

	// Comp provider credentials. An empty CompProviderURL disables live
	// fetching; the server then prices only caller-supplied observations.
	CompProviderURL string
	CompProviderKey string

	// CacheTTL bounds how long fetched comps are reused per identity hash.
	CacheTTL time.Duration
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	_ = loadDotEnv(".env")

	cfg := Config{
		Port:            os.Getenv("PORT"),
		DBPath:          os.Getenv("DB_PATH"),
		ProfilesPath:    os.Getenv("PROFILES_PATH"),
		APIToken:        os.Getenv("API_TOKEN"),
		CompProviderURL: os.Getenv("COMP_PROVIDER_URL"),
		CompProviderKey: os.Getenv("COMP_PROVIDER_KEY"),
		CacheTTL:        defaultCacheTTL,
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.ProfilesPath == "" {
		cfg.ProfilesPath = defaultProfilesPath
	}
	if raw := os.Getenv("CACHE_TTL_MINUTES"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			log.Printf("warning: ignoring invalid CACHE_TTL_MINUTES %q", raw)
		} else {
			cfg.CacheTTL = time.Duration(minutes) * time.Minute
		}
	}

	if cfg.APIToken == "" {
		log.Print("warning: API_TOKEN is not set, pricing endpoints are unauthenticated")
	}
	if cfg.CompProviderURL != "" && cfg.CompProviderKey == "" {
		log.Print("warning: COMP_PROVIDER_URL is set but COMP_PROVIDER_KEY is empty")
	}

	return cfg
}
