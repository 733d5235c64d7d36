// Package command parses one line of post-authentication input, runs the
// matching handler, and formats the reply.
//
// Whether a reply closes the connection is an explicit Disposition on the
// Result, never inferred from the reply text. The reply strings keep the
// historical "ERROR:" / "error:" prefixes so existing clients that key off
// them continue to work, but the server itself only looks at Disposition.
package command

import (
	"fmt"
	"strconv"
	"strings"
)

// Disposition tells the event loop what to do with the connection after the
// reply (if any) has been written.
type Disposition int

const (
	// KeepOpen leaves the connection open awaiting the next command.
	KeepOpen Disposition = iota
	// CloseAfterReply writes the reply and then closes the connection.
	CloseAfterReply
	// CloseSilently closes the connection without writing anything.
	CloseSilently
)

// Result is the outcome of dispatching one command line.
type Result struct {
	Reply       string
	Disposition Disposition
}

func reply(text string) Result {
	return Result{Reply: text}
}

func fatal(text string) Result {
	return Result{Reply: text, Disposition: CloseAfterReply}
}

// Dispatch handles one line from an authenticated client.
//
// "quit" (surrounding whitespace ignored) disconnects without a reply. Every
// other line must be "name: payload"; a missing colon and caesar's
// invalid-input error are fatal. Unknown commands and argument validation
// errors are reported and the connection stays open.
func Dispatch(line string) Result {
	if strings.TrimSpace(line) == "quit" {
		return Result{Disposition: CloseSilently}
	}

	name, payload, found := strings.Cut(line, ":")
	if !found {
		return fatal("ERROR: invalid command format, expected 'command: parameters'")
	}
	name = strings.TrimSpace(name)

	switch name {
	case "parentheses":
		return parenthesesCmd(payload)
	case "lcm":
		return lcmCmd(payload)
	case "caesar":
		return caesarCmd(payload)
	default:
		return reply(fmt.Sprintf("ERROR: unknown command %q", name))
	}
}

func parenthesesCmd(payload string) Result {
	s := strings.TrimSpace(payload)
	if s == "" {
		return reply("ERROR: parentheses requires a parameter")
	}

	balanced, err := Balanced(s)
	if err != nil {
		return reply("ERROR: The string isn't only parentheses")
	}
	answer := "no"
	if balanced {
		answer = "yes"
	}
	return reply("the parentheses are balanced: " + answer)
}

func lcmCmd(payload string) Result {
	params := strings.Fields(payload)
	if len(params) != 2 {
		return reply("ERROR: lcm requires exactly 2 parameters")
	}

	a, errA := strconv.ParseInt(params[0], 10, 64)
	b, errB := strconv.ParseInt(params[1], 10, 64)
	if errA != nil || errB != nil {
		return reply("ERROR: lcm parameters must be integers")
	}

	return reply(fmt.Sprintf("the lcm is: %d", LCM(a, b)))
}

// caesarCmd splits the payload on the last whitespace run so the plaintext
// itself may contain spaces: "caesar: hello world 3" shifts "hello world".
func caesarCmd(payload string) Result {
	trimmed := strings.TrimSpace(payload)

	i := strings.LastIndexByte(trimmed, ' ')
	if i < 0 {
		return reply("ERROR: caesar requires plaintext and shift")
	}
	text := strings.TrimRight(trimmed[:i], " ")
	shiftParam := trimmed[i+1:]

	shift, err := strconv.Atoi(shiftParam)
	if err != nil {
		return reply("ERROR: shift must be an integer")
	}

	if !validCaesarInput(text) {
		return fatal("error: invalid input")
	}

	return reply("The ciphertext is: " + Caesar(text, shift))
}
