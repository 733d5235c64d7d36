// Package session implements the per-connection authentication state
// machine. A connection starts in AwaitingUsername, moves to
// AwaitingPassword once a username arrives, and becomes Authenticated when
// the password matches the credential store. A mismatch loops back to
// AwaitingUsername; retries are unlimited.
//
// Login is split across two round trips (username, then password) so a
// client can acknowledge the username before prompting for a password,
// which allows masked password entry without protocol changes.
package session

import (
	"strings"

	"github.com/gateline/gateline/internal/server/command"
)

// State is the authentication stage of one connection.
type State int

const (
	AwaitingUsername State = iota
	AwaitingPassword
	Authenticated
)

func (s State) String() string {
	switch s {
	case AwaitingUsername:
		return "awaiting_username"
	case AwaitingPassword:
		return "awaiting_password"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// CredentialSource is the read-only lookup the state machine needs.
// *users.Store satisfies it.
type CredentialSource interface {
	Lookup(username string) (string, bool)
}

// Session holds the authentication state of a single connection.
//
// Invariant: pendingUser is non-empty if and only if the state is
// AwaitingPassword. The pending username lives inside the session record,
// never in a side table keyed by connection.
type Session struct {
	state       State
	pendingUser string
	user        string
}

// New returns a session in AwaitingUsername.
func New() *Session {
	return &Session{state: AwaitingUsername}
}

// State returns the current authentication stage.
func (s *Session) State() State {
	return s.state
}

// Username returns the name the connection authenticated as, or "" before
// authentication completes.
func (s *Session) Username() string {
	return s.user
}

// Handle drives one login message through the state machine and returns the
// reply to write plus what to do with the connection. It must not be called
// once the session is Authenticated; command lines belong to the dispatcher.
func (s *Session) Handle(line string, creds CredentialSource) command.Result {
	switch s.state {
	case AwaitingUsername:
		name, ok := parseField(line, "User")
		if !ok {
			return command.Result{Reply: "Invalid login format", Disposition: command.CloseAfterReply}
		}
		s.state = AwaitingPassword
		s.pendingUser = name
		return command.Result{Reply: "OK"}

	case AwaitingPassword:
		pw, ok := parseField(line, "Password")
		if !ok {
			s.pendingUser = ""
			return command.Result{Reply: "Invalid login format", Disposition: command.CloseAfterReply}
		}

		name := s.pendingUser
		want, known := creds.Lookup(name)
		if known && want == pw {
			s.state = Authenticated
			s.user = name
			s.pendingUser = ""
			return command.Result{Reply: "Hi " + name + ", good to see you"}
		}

		s.state = AwaitingUsername
		s.pendingUser = ""
		return command.Result{Reply: "Failed to login."}

	default:
		// Authenticated lines are routed to the dispatcher by the loop;
		// reaching here is a programming error, treat it as fatal.
		return command.Result{Disposition: command.CloseSilently}
	}
}

// parseField matches "<key>: <value>" and returns the trimmed value.
// A missing key prefix, a missing colon, or an empty value is a parse
// failure, reported explicitly rather than via panic or exception-style
// recovery.
func parseField(line, key string) (string, bool) {
	prefix, value, found := strings.Cut(line, ":")
	if !found {
		return "", false
	}
	if strings.TrimSpace(prefix) != key {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}
