package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputTable(t *testing.T) {
	showCategory, showURL = true, true
	t.Cleanup(func() { showCategory, showURL = true, false })

	var out bytes.Buffer
	err := outputTable(&out, []string{"cat.png", "notes/a.txt"}, func(key string) string {
		return "http://localhost:3000/download/docs/" + key
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Contains(t, lines[1], "cat.png")
	assert.Contains(t, lines[1], "image")
	assert.Contains(t, lines[2], "http://localhost:3000/download/docs/notes/a.txt")
	assert.Equal(t, "Total: 2 files", lines[4])
}

func TestOutputTable_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, outputTable(&out, nil, nil))
	assert.Equal(t, "No files in this bucket\n", out.String())
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tc := range tests {
		cmd := &cobra.Command{}
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetIn(strings.NewReader(tc.input))

		assert.Equal(t, tc.want, confirm(cmd, "Delete? (y/N): "), "input %q", tc.input)
		assert.Equal(t, "Delete? (y/N): ", out.String())
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"health", "buckets", "list", "upload", "delete", "url", "download"} {
		c, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
	}
}
