//nolint:funlen // ok for tests
package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"abbreviations.txt": "SVF_Sebastian Vettel_FERRARI\nLHM_Lewis Hamilton_MERCEDES\n",
		"start.log":         "SVF_12:00:00.000\nLHM_12:10:00.000\n",
		"end.log":           "SVF_12:01:30.500\nLHM_12:11:12.000\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cfgFile = ""
	cmd := NewRootCmd()
	outBuf, errBuf := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(outBuf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestRootCmd(t *testing.T) {
	dir := writeRace(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "ascending",
			args: []string{"--files", dir},
			want: " 1. Lewis Hamilton       |MERCEDES                  |0:01:12.000\n" +
				" 2. Sebastian Vettel     |FERRARI                   |0:01:30.500\n",
		},
		{
			name: "explicit ascending",
			args: []string{"-f", dir, "--asc"},
			want: " 1. Lewis Hamilton       |MERCEDES                  |0:01:12.000\n" +
				" 2. Sebastian Vettel     |FERRARI                   |0:01:30.500\n",
		},
		{
			name: "descending",
			args: []string{"-f", dir, "--desc"},
			want: " 1. Sebastian Vettel     |FERRARI                   |0:01:30.500\n" +
				" 2. Lewis Hamilton       |MERCEDES                  |0:01:12.000\n",
		},
		{
			name: "driver",
			args: []string{"-f", dir, "-d", "vet"},
			want: "Sebastian Vettel     |FERRARI                   |0:01:30.500\n",
		},
		{
			name: "unknown driver",
			args: []string{"-f", dir, "--driver", "senna"},
			want: "Driver not found\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRootCmdErrors(t *testing.T) {
	dir := writeRace(t)
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing data dir", []string{"-f", filepath.Join(dir, "nope")}, "abbreviations.txt"},
		{"asc and desc", []string{"-f", dir, "--asc", "--desc"}, "asc"},
		{"bad format", []string{"-f", dir, "--format", "xml"}, "invalid format"},
		{"bad log level", []string{"-f", dir, "--log-level", "loud"}, "loud"},
		{"positional arg", []string{"-f", dir, "extra"}, "unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, out)
		})
	}
}

func TestRootCmdConfigFile(t *testing.T) {
	dir := writeRace(t)
	hamilton := "Lewis Hamilton       |MERCEDES                  |0:01:12.000\n"
	vettel := "Sebastian Vettel     |FERRARI                   |0:01:30.500\n"
	tests := []struct {
		name    string
		content string
		args    []string
		want    string
	}{
		{
			name:    "driver from config",
			content: "files: " + dir + "\ndriver: ham\n",
			want:    hamilton,
		},
		{
			name:    "desc from config",
			content: "files: " + dir + "\ndesc: true\n",
			want:    " 1. " + vettel + " 2. " + hamilton,
		},
		{
			name:    "asc flag overrides desc from config",
			content: "files: " + dir + "\ndesc: true\n",
			args:    []string{"--asc"},
			want:    " 1. " + hamilton + " 2. " + vettel,
		},
		{
			name:    "desc flag overrides asc from config",
			content: "files: " + dir + "\nasc: true\n",
			args:    []string{"--desc"},
			want:    " 1. " + vettel + " 2. " + hamilton,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := filepath.Join(t.TempDir(), "lapreport.yml")
			require.NoError(t, os.WriteFile(cfg, []byte(tt.content), 0o600))

			out, stderr, err := execute(t, append([]string{"--config", cfg}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
			assert.Contains(t, stderr, "Using config file:")
		})
	}
}

func TestRootCmdEnvOrderOverride(t *testing.T) {
	dir := writeRace(t)
	t.Setenv("LAPREPORT_DESC", "true")

	out, _, err := execute(t, "-f", dir, "--asc")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, " 1. Lewis Hamilton"), "got %q", out)
}

func TestRootCmdEnv(t *testing.T) {
	dir := writeRace(t)
	t.Setenv("LAPREPORT_FILES", dir)
	t.Setenv("LAPREPORT_FORMAT", "json")

	out, _, err := execute(t)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "["), "got %q", out)
	assert.Contains(t, out, "Lewis Hamilton")
}

func TestRootCmdLogging(t *testing.T) {
	dir := writeRace(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "end.log"),
		[]byte("SVF_12:01:30.500\n"), 0o600))

	_, stderr, err := execute(t, "-f", dir, "--log-format", "json")
	require.NoError(t, err)
	assert.Contains(t, stderr, "driver has no lap time")
	assert.Contains(t, stderr, `"abbreviation":"LHM"`)

	_, stderr, err = execute(t, "-f", dir, "--log-filter", "*:roster,laptime")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "driver has no lap time")
}
