package cli

import (
	"bufio"
	"bytes"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gateline/gateline/internal/client/config"
)

func stubPassword(t *testing.T, passwords ...string) {
	t.Helper()
	orig := readPassword
	i := 0
	readPassword = func(int) ([]byte, error) {
		pw := passwords[i]
		if i < len(passwords)-1 {
			i++
		}
		return []byte(pw), nil
	}
	t.Cleanup(func() { readPassword = orig })
}

func newTestApp(t *testing.T, userInput string) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	app := &App{
		config: &config.Config{ServerAddr: "test", ResponseTimeout: 2 * time.Second},
		in:     bufio.NewReader(strings.NewReader(userInput)),
		out:    out,
	}
	return app, out
}

// scriptedServer answers each expected client line with the paired reply.
// An empty reply means read only (used for quit).
func scriptedServer(t *testing.T, conn net.Conn, script [][2]string) <-chan struct{} {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer conn.Close()
		r := bufio.NewReader(conn)
		for _, step := range script {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			if step[0] != "" && strings.TrimRight(line, "\n") != step[0] {
				return
			}
			if step[1] != "" {
				if _, err := conn.Write([]byte(step[1] + "\n")); err != nil {
					return
				}
			}
		}
	}()
	return done
}

func TestLogin_Success(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	stubPassword(t, "secret")
	app, out := newTestApp(t, "alice\n")

	done := scriptedServer(t, server, [][2]string{
		{"User: alice", "OK"},
		{"Password: secret", "Hi alice, good to see you"},
	})

	err := app.login(client, bufio.NewReader(client))
	require.NoError(t, err)
	<-done

	assert.Contains(t, out.String(), "Hi alice, good to see you")
}

func TestLogin_RetriesAfterFailure(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	stubPassword(t, "wrong", "secret")
	app, out := newTestApp(t, "alice\nalice\n")

	done := scriptedServer(t, server, [][2]string{
		{"User: alice", "OK"},
		{"Password: wrong", "Failed to login."},
		{"User: alice", "OK"},
		{"Password: secret", "Hi alice, good to see you"},
	})

	err := app.login(client, bufio.NewReader(client))
	require.NoError(t, err)
	<-done

	assert.Contains(t, out.String(), "Failed to login.")
	assert.Contains(t, out.String(), "Hi alice, good to see you")
}

func TestLogin_UnexpectedAck(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	app, out := newTestApp(t, "alice\n")

	scriptedServer(t, server, [][2]string{
		{"User: alice", "something else"},
	})

	err := app.login(client, bufio.NewReader(client))
	require.ErrorIs(t, err, ErrFatalResponse)
	assert.Contains(t, out.String(), "Unexpected server response")
}

func TestCommandLoop_QuitExitsCleanly(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	app, out := newTestApp(t, "lcm: 4 6\nquit\n")

	done := scriptedServer(t, server, [][2]string{
		{"lcm: 4 6", "the lcm is: 12"},
		{"quit", ""},
	})

	err := app.commandLoop(client, bufio.NewReader(client))
	require.NoError(t, err)
	<-done

	assert.Contains(t, out.String(), "the lcm is: 12")
}

func TestCommandLoop_FatalReply(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	app, out := newTestApp(t, "caesar: h3llo 1\n")

	scriptedServer(t, server, [][2]string{
		{"caesar: h3llo 1", "error: invalid input"},
	})

	err := app.commandLoop(client, bufio.NewReader(client))
	require.ErrorIs(t, err, ErrFatalResponse)
	assert.Contains(t, out.String(), "error: invalid input")
	assert.Contains(t, out.String(), "Connection closed due to error.")
}

func TestCommandLoop_ServerDisconnect(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	app, out := newTestApp(t, "lcm: 4 6\n")

	go func() {
		r := bufio.NewReader(server)
		_, _ = r.ReadString('\n')
		server.Close()
	}()

	err := app.commandLoop(client, bufio.NewReader(client))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Server disconnected")
}

func TestGetSimpleText(t *testing.T) {
	out := &bytes.Buffer{}

	got, err := GetSimpleText(bufio.NewReader(strings.NewReader("  hello  \n")), "prompt: ", out)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.Equal(t, "prompt: ", out.String())
}

func TestGetSimpleText_PartialLineAtEOF(t *testing.T) {
	out := &bytes.Buffer{}

	got, err := GetSimpleText(bufio.NewReader(strings.NewReader("no newline")), "> ", out)
	require.NoError(t, err)
	assert.Equal(t, "no newline", got)
}

func TestGetPassword_UsesSeam(t *testing.T) {
	stubPassword(t, "s3cret")
	out := &bytes.Buffer{}

	got, err := GetPassword("Password: ", out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
	assert.Contains(t, out.String(), "Password: ")
}
