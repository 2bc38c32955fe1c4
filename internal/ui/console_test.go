package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestConsole() (*Console, *bytes.Buffer, *bytes.Buffer, *int) {
	var out, errOut bytes.Buffer
	code := -1
	console := NewConsole(&out, &errOut).WithExit(func(c int) { code = c })
	return console, &out, &errOut, &code
}

func TestConsole_StreamsAndSymbols(t *testing.T) {
	console, out, errOut, _ := newTestConsole()

	console.Success("All done!")
	console.Info("Creating repository")
	console.Log("plain")
	console.Warn("careful")
	console.Error("Already a Git repository!")

	assert.Contains(t, out.String(), "✔ All done!")
	assert.Contains(t, out.String(), "ℹ Creating repository")
	assert.Contains(t, out.String(), "plain\n")
	assert.Contains(t, errOut.String(), "⚠ careful")
	assert.Contains(t, errOut.String(), "✖ Already a Git repository!")
	assert.NotContains(t, out.String(), "Already a Git repository!")
}

func TestConsole_Banner(t *testing.T) {
	console, out, _, _ := newTestConsole()

	console.Banner("Secretariat")

	assert.Contains(t, out.String(), "Secretariat")
	assert.Greater(t, strings.Count(out.String(), "\n"), 1, "banner is boxed")
}

func TestConsole_FatalExitsNonZero(t *testing.T) {
	console, _, errOut, code := newTestConsole()

	console.Fatal("Couldn't log you in. Please provide correct credentials/token.")

	assert.Equal(t, 1, *code)
	assert.Contains(t, errOut.String(), "Couldn't log you in.")
}
