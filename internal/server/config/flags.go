package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/odyssey/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     HTTP bind address (e.g., ":8080")
//	-d string     PostgreSQL DSN
//	-s string     session token HMAC secret
//	-g string     geocoder search URL
//	-u string     geocoder User-Agent
//	-t duration   geocoder timeout (e.g., "10s")
//	-i            insecure session cookie (no Secure attribute)
//
// os.Args is first narrowed with flagx.FilterArgs so the -c / -config flag
// handled by parseJson does not trip this FlagSet.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-g", "-u", "-t", "-i"}, "-i")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.GeocoderURL, "g", config.GeocoderURL, "geocoder search URL")
	fs.StringVar(&config.GeocoderUserAgent, "u", config.GeocoderUserAgent, "geocoder User-Agent")
	fs.DurationVar(&config.GeocoderTimeout, "t", config.GeocoderTimeout, "geocoder timeout")
	fs.BoolVar(&config.InsecureCookie, "i", config.InsecureCookie, "send the session cookie without Secure")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
