package users

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeUsersFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile_ParsesTabDelimitedLines(t *testing.T) {
	path := writeUsersFile(t, "alice\tsecret\nbob\thunter2\n")

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	pw, ok := s.Lookup("alice")
	assert.True(t, ok)
	assert.Equal(t, "secret", pw)

	pw, ok = s.Lookup("bob")
	assert.True(t, ok)
	assert.Equal(t, "hunter2", pw)
}

func TestLoadFile_SkipsMalformedLines(t *testing.T) {
	path := writeUsersFile(t, "alice\tsecret\nnotabshere\ntoo\tmany\tfields\n\nbob\thunter2\n")

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	_, ok := s.Lookup("notabshere")
	assert.False(t, ok)
}

func TestLoadFile_LastDuplicateWins(t *testing.T) {
	path := writeUsersFile(t, "alice\tfirst\nalice\tsecond\n")

	s, err := LoadFile(path)
	require.NoError(t, err)

	pw, ok := s.Lookup("alice")
	assert.True(t, ok)
	assert.Equal(t, "second", pw)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}

func TestLookup_UnknownUser(t *testing.T) {
	path := writeUsersFile(t, "alice\tsecret\n")

	s, err := LoadFile(path)
	require.NoError(t, err)

	_, ok := s.Lookup("mallory")
	assert.False(t, ok)
}
