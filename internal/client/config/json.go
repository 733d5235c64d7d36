package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/gateline/gateline/internal/flagx"
	"github.com/gateline/gateline/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "5s" or as integer nanoseconds.
type JsonConfig struct {
	ServerAddr      string         `json:"server_addr"`
	ResponseTimeout timex.Duration `json:"response_timeout"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flags; when neither is set nothing is loaded. Read or
// unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.ServerAddr = jc.ServerAddr
	cfg.ResponseTimeout = time.Duration(jc.ResponseTimeout.Duration)
}
