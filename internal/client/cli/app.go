// Package cli provides the interactive gateline command-line client.
//
// It is a thin wrapper over the wire protocol: prompt for credentials until
// the server accepts them (password entry is masked, which is why the
// protocol acknowledges the username before the password is sent), then
// forward command lines and print replies until quit, a fatal server error,
// or disconnect.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/gateline/gateline/internal/client/config"
)

// ErrFatalResponse is returned when the server answered with a fatal error
// and closed the connection.
var ErrFatalResponse = errors.New("connection closed due to error")

type App struct {
	config *config.Config
	in     *bufio.Reader
	out    io.Writer
}

func NewApp(cfg *config.Config) (*App, error) {
	return &App{
		config: cfg,
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// Run connects to the server and drives the login and command loops.
func (a *App) Run() error {
	conn, err := net.Dial("tcp", a.config.ServerAddr)
	if err != nil {
		fmt.Fprintln(a.out, "Couldn't connect to server")
		return err
	}
	defer conn.Close()

	return a.session(conn)
}

func (a *App) session(conn net.Conn) error {
	srv := bufio.NewReader(conn)

	banner, err := a.readReply(conn, srv)
	if err != nil {
		return fmt.Errorf("reading welcome banner: %w", err)
	}
	fmt.Fprintln(a.out, banner)

	if err := a.login(conn, srv); err != nil {
		return err
	}

	return a.commandLoop(conn, srv)
}

// readReply reads one newline-terminated server reply, bounded by the
// configured response timeout.
func (a *App) readReply(conn net.Conn, srv *bufio.Reader) (string, error) {
	if err := conn.SetReadDeadline(time.Now().Add(a.config.ResponseTimeout)); err != nil {
		return "", err
	}
	line, err := srv.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (a *App) send(conn net.Conn, line string) error {
	_, err := conn.Write([]byte(line + "\n"))
	return err
}
