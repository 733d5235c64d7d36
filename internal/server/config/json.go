package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/gateline/gateline/internal/flagx"
	"github.com/gateline/gateline/internal/timex"
)

// JsonConfig is the JSON-file shape of the server configuration. It uses
// timex.Duration for interval fields so both "250ms" strings and integer
// nanoseconds parse. After unmarshalling, its fields are copied into the
// runtime Config.
type JsonConfig struct {
	EndpointAddr string         `json:"endpoint_addr"`
	UsersFile    string         `json:"users_file"`
	PollTimeout  timex.Duration `json:"poll_timeout"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags; when
// neither is set, no JSON file is loaded. An unreadable file or invalid
// JSON panics: a config file that was asked for but cannot be used is a
// startup-time mistake.
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

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.UsersFile = c.UsersFile
	config.PollTimeout = time.Duration(c.PollTimeout.Duration)
}
