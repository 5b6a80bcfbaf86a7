// Package config loads the importer configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Config carries everything the import run needs. All values come from the
// environment; a .env file may be loaded first by the caller.
type Config struct {
	// Pohoda mServer
	PohodaURL      string
	PohodaUsername string
	PohodaPassword string
	PohodaICO      string
	PohodaBankIDS  string

	// KB Accounts API
	KBAPIURL      string
	AccessToken   string
	AccountNumber string
	ClientID      string

	// mTLS certificate for the bank API
	CertFile string
	CertPass string

	// Run behaviour
	ImportScope string
	JobID       string
	ReportFile  string
	StateDB     string
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		PohodaURL:      getEnv("POHODA_URL", ""),
		PohodaUsername: getEnv("POHODA_USERNAME", ""),
		PohodaPassword: getEnv("POHODA_PASSWORD", ""),
		PohodaICO:      getEnv("POHODA_ICO", ""),
		PohodaBankIDS:  getEnv("POHODA_BANK_IDS", "KB"),

		KBAPIURL:      getEnv("KB_API_URL", "https://api.kb.cz/open/api/adaa/v1"),
		AccessToken:   getEnv("ACCESS_TOKEN", ""),
		AccountNumber: getEnv("ACCOUNT_NUMBER", ""),
		ClientID:      getEnv("XIBMCLIENTID", ""),

		CertFile: getEnv("CERT_FILE", ""),
		CertPass: getEnv("CERT_PASS", ""),

		ImportScope: getEnv("IMPORT_SCOPE", "yesterday"),
		JobID:       getEnv("JOB_ID", ""),
		ReportFile:  getEnv("REPORT_FILE", ""),
		StateDB:     getEnv("STATE_DB", ""),
	}
}

// Validate checks that the required settings are present and well formed.
func (c *Config) Validate() error {
	var errors []string

	if c.PohodaURL == "" {
		errors = append(errors, "POHODA_URL is required")
	} else if parsed, err := url.Parse(c.PohodaURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid POHODA_URL '%s': %v", c.PohodaURL, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid POHODA_URL scheme '%s': must be http or https", parsed.Scheme))
	}

	if c.PohodaICO == "" {
		errors = append(errors, "POHODA_ICO is required")
	}

	if c.AccountNumber == "" {
		errors = append(errors, "ACCOUNT_NUMBER is required")
	}

	if c.AccessToken == "" {
		errors = append(errors, "ACCESS_TOKEN is required")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
