package config

import (
	"os"

	"github.com/dmitrijs2005/odyssey/internal/flagx"
	"github.com/dmitrijs2005/odyssey/internal/timex"
	"github.com/goccy/go-json"
)

// JsonConfig mirrors Config for JSON files. GeocoderTimeout is a
// timex.Duration so both "10s" and integer nanoseconds are accepted.
// Pointers distinguish "absent" from the zero value.
type JsonConfig struct {
	EndpointAddrHTTP  *string         `json:"endpoint_addr_http"`
	DatabaseDSN       *string         `json:"database_dsn"`
	SecretKey         *string         `json:"secret_key"`
	GeocoderURL       *string         `json:"geocoder_url"`
	GeocoderUserAgent *string         `json:"geocoder_user_agent"`
	GeocoderTimeout   *timex.Duration `json:"geocoder_timeout"`
	InsecureCookie    *bool           `json:"insecure_cookie"`
}

// parseJson overlays values from the file named by -c / -config. Keys missing
// from the file leave the current values untouched. An unreadable file or
// invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFilePath()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != nil {
		config.EndpointAddrHTTP = *c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.GeocoderURL != nil {
		config.GeocoderURL = *c.GeocoderURL
	}
	if c.GeocoderUserAgent != nil {
		config.GeocoderUserAgent = *c.GeocoderUserAgent
	}
	if c.GeocoderTimeout != nil {
		config.GeocoderTimeout = c.GeocoderTimeout.Duration
	}
	if c.InsecureCookie != nil {
		config.InsecureCookie = *c.InsecureCookie
	}
}
