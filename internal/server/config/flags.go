package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/userboard/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   session store backend ("postgres" or "memory")
//	-t int      session TTL, minutes
//	-i int      session sweep interval, minutes
//	-b int      bcrypt cost
//	-n string   session cookie name
//	-k          set the Secure attribute on the session cookie
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags are accepted as integers in minutes and then converted to
// time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-i", "-b", "-n", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SessionStore, "s", config.SessionStore, "session store backend (postgres|memory)")

	sessionTTL := fs.Int("t", int(config.SessionTTL.Minutes()), "session TTL (in minutes)")
	sweepInterval := fs.Int("i", int(config.SessionSweepInterval.Minutes()), "session sweep interval (in minutes)")

	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.CookieName, "n", config.CookieName, "session cookie name")
	fs.BoolVar(&config.CookieSecure, "k", config.CookieSecure, "set Secure on the session cookie")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionTTL = time.Duration(*sessionTTL) * time.Minute
	config.SessionSweepInterval = time.Duration(*sweepInterval) * time.Minute
}
