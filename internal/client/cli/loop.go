package cli

import (
	"bufio"
	"fmt"
	"net"
	"strings"
)

// login runs the two-round-trip authentication exchange until the server
// accepts a username/password pair. The server acknowledges the username
// with "OK" before the (masked) password prompt is shown.
func (a *App) login(conn net.Conn, srv *bufio.Reader) error {
	for {
		username, err := GetSimpleText(a.in, "Username: ", a.out)
		if err != nil {
			return err
		}

		if err := a.send(conn, "User: "+username); err != nil {
			return err
		}

		ack, err := a.readReply(conn, srv)
		if err != nil {
			return fmt.Errorf("waiting for username ack: %w", err)
		}
		if ack != "OK" {
			fmt.Fprintln(a.out, "Unexpected server response - closing connection")
			return ErrFatalResponse
		}

		password, err := GetPassword("Password: ", a.out)
		if err != nil {
			return err
		}

		if err := a.send(conn, "Password: "+password); err != nil {
			return err
		}

		reply, err := a.readReply(conn, srv)
		if err != nil {
			return fmt.Errorf("waiting for login result: %w", err)
		}
		fmt.Fprintln(a.out, reply)

		if reply != "Failed to login." {
			return nil
		}
	}
}

// commandLoop forwards command lines and prints replies until the user
// quits, the server disconnects, or a fatal error reply arrives.
func (a *App) commandLoop(conn net.Conn, srv *bufio.Reader) error {
	for {
		cmd, err := GetSimpleText(a.in, "Enter command (parentheses/lcm/caesar/quit): ", a.out)
		if err != nil {
			return err
		}

		if err := a.send(conn, cmd); err != nil {
			return err
		}

		if cmd == "quit" {
			return nil
		}

		reply, err := a.readReply(conn, srv)
		if err != nil {
			fmt.Fprintln(a.out, "Server disconnected")
			return nil
		}
		fmt.Fprintln(a.out, reply)

		lower := strings.ToLower(reply)
		if strings.HasPrefix(lower, "error:") {
			fmt.Fprintln(a.out, "Connection closed due to error.")
			return ErrFatalResponse
		}
	}
}
