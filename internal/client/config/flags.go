package config

import (
	"flag"
	"os"
	"time"

	"github.com/gateline/gateline/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   address and port of the server
//	-w int      response timeout, seconds
//
// The arguments are filtered with flagx.FilterArgs first so the JSON overlay
// flags pass through untouched.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerAddr, "a", cfg.ServerAddr, "address and port to access server")
	responseTimeout := fs.Int("w", int(cfg.ResponseTimeout.Seconds()), "response timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.ResponseTimeout = time.Duration(*responseTimeout) * time.Second
}
