// Package users implements the credential store: an immutable
// username→password table loaded once at startup and queried during login.
package users

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Store maps usernames to passwords. It is populated once by LoadFile and
// never mutated afterwards, so the event loop can read it without locking.
type Store struct {
	creds map[string]string
}

// LoadFile reads a line-oriented credentials file where each line is
// "username<TAB>password". Lines that do not split into exactly two
// tab-separated fields are skipped.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open users file: %w", err)
	}
	defer f.Close()

	creds := make(map[string]string)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		parts := strings.Split(line, "\t")
		if len(parts) != 2 {
			continue
		}
		creds[parts[0]] = parts[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read users file: %w", err)
	}

	return &Store{creds: creds}, nil
}

// Lookup returns the password registered for username.
func (s *Store) Lookup(username string) (string, bool) {
	pw, ok := s.creds[username]
	return pw, ok
}

// Len reports how many credentials were loaded. Used in the startup log.
func (s *Store) Len() int {
	return len(s.creds)
}
