// Package common defines shared constants and sentinel errors used across
// the server packages. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Credential store errors.
	ErrorNotFound = errors.New("not found")

	// Configuration / startup errors.
	ErrorNoUsersFile = errors.New("no users file specified")
)
