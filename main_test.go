package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"--version"}, strings.NewReader(""), &out))
	assert.Equal(t, "snakebnb dev\n", out.String())
}

func TestRun_Help(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"--help"}, strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "--mode")
	assert.Contains(t, out.String(), "--log-output")
	assert.Contains(t, out.String(), "STORE_DRIVER")
}

func TestRun_BadArguments(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run([]string{"--mode", "admin"}, strings.NewReader(""), &out))
	assert.Error(t, run([]string{"extra"}, strings.NewReader(""), &out))
	assert.Error(t, run([]string{"--config", "does-not-exist.env"}, strings.NewReader(""), &out))
}

func TestRun_MemoryStore(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	var out bytes.Buffer
	input := strings.Join([]string{
		"c", "Ada", "ada@example.com",
		"a", "Kaa", "1.5", "python", "n",
		"y",
		"x",
	}, "\n") + "\n"

	require.NoError(t, run([]string{"--mode", "guest"}, strings.NewReader(input), &out))
	assert.Contains(t, out.String(), "Welcome guest")
	assert.Contains(t, out.String(), " * Kaa is a python that is 1.5m long and is not venomous.")
	assert.NotContains(t, out.String(), "Are you a [g]uest or [h]ost?")
}
