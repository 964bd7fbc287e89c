// Package commands tests CLI command creation and plumbing.
package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDetectCommand(t *testing.T) {
	cmd := NewDetectCommand()

	assert.Equal(t, "detect", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	for _, flag := range []string{"system", "user"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewSuggestCommand(t *testing.T) {
	cmd := NewSuggestCommand()

	assert.Equal(t, "suggest", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestNewRenderCommand(t *testing.T) {
	cmd := NewRenderCommand()

	assert.Equal(t, "render", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestNewValidateCommand(t *testing.T) {
	cmd := NewValidateCommand()

	assert.Equal(t, "validate", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("expression"), "flag \"expression\" should exist")
}

func TestNewServeCommand(t *testing.T) {
	cmd := NewServeCommand()

	assert.Equal(t, "serve", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("port"), "flag \"port\" should exist")
}

func TestNewSessionCommand(t *testing.T) {
	cmd := NewSessionCommand()

	assert.Equal(t, "session", cmd.Use)
	require.Len(t, cmd.Commands(), 1)
	assert.Equal(t, "sweep", cmd.Commands()[0].Use)
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3", "2026-01-02", "abc1234")
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "promptfield v1.2.3")
	assert.Contains(t, output, "2026-01-02")
	assert.Contains(t, output, "abc1234")
}

func TestDetectStandalone(t *testing.T) {
	cmd := NewDetectCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--user", "Summarize {{Region}} trends"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "{{Region}}")
	assert.Contains(t, output, "user")
}
