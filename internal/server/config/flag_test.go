package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name     string
		args     []string
		expected *Config
	}{
		{
			name: "all flags set",
			args: []string{"cmd", "-a", "127.0.0.1:9090", "-f", "users.txt", "-t", "500"},
			expected: &Config{
				EndpointAddr: "127.0.0.1:9090",
				UsersFile:    "users.txt",
				PollTimeout:  500 * time.Millisecond,
			},
		},
		{
			name: "unknown flags are ignored",
			args: []string{"cmd", "-a", ":9999", "-z", "whatever", "-t", "100"},
			expected: &Config{
				EndpointAddr: ":9999",
				PollTimeout:  100 * time.Millisecond,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Equal(t, tt.expected, config)
		})
	}
}
