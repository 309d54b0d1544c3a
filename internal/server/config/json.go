package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/userboard/internal/flagx"
	"github.com/dmitrijs2005/userboard/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "24h" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddr         string         `json:"endpoint_addr"`
	DatabaseDSN          string         `json:"database_dsn"`
	SessionStore         string         `json:"session_store"`
	SessionTTL           timex.Duration `json:"session_ttl"`
	SessionSweepInterval timex.Duration `json:"session_sweep_interval"`
	BcryptCost           int            `json:"bcrypt_cost"`
	CookieName           string         `json:"cookie_name"`
	CookieSecure         bool           `json:"cookie_secure"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. If the file cannot be
// read or contains invalid JSON, the function panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SessionStore = c.SessionStore
	config.SessionTTL = c.SessionTTL.Duration
	config.SessionSweepInterval = c.SessionSweepInterval.Duration
	config.BcryptCost = c.BcryptCost
	config.CookieName = c.CookieName
	config.CookieSecure = c.CookieSecure
}
