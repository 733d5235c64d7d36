package config

import (
	"flag"
	"os"
	"time"

	"github.com/gateline/gateline/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   bind address (e.g., ":1337")
//	-f string   path to the users file (username<TAB>password per line)
//	-t int      poll timeout, milliseconds
//
// The arguments are first filtered to the flags handled here using
// flagx.FilterArgs, so that the -c/-config flags of the JSON overlay do not
// collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.UsersFile, "f", config.UsersFile, "path to users file")

	pollTimeout := fs.Int("t", int(config.PollTimeout.Milliseconds()), "poll timeout (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.PollTimeout = time.Duration(*pollTimeout) * time.Millisecond
}
