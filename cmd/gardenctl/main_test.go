package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["migrate"])
	assert.True(t, names["validate-packs"])
	assert.True(t, names["render"])

	sub := map[string]bool{}
	for _, c := range migrateCmd.Commands() {
		sub[c.Name()] = true
	}
	assert.Equal(t, map[string]bool{"up": true, "down": true, "status": true}, sub)
}

func TestRenderCommand_Args(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		// Flag state persists across Execute calls, so the unset-flag case runs first
		{"missing output", []string{"render", "sunflower", "3"}, `required flag(s) "output" not set`},
		{"missing nourishment", []string{"render", "sunflower", "-o", "x.png"}, "accepts 2 arg(s)"},
		{"bad nourishment", []string{"render", "sunflower", "lots", "-o", "x.png"}, "invalid nourishment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetErr(&out)
			rootCmd.SetArgs(tt.args)

			err := rootCmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidatePacks_MissingDir(t *testing.T) {
	rootCmd.SetArgs([]string{"validate-packs", t.TempDir() + "/nope"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	assert.Error(t, rootCmd.Execute())
}
