package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitArgs(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		cmd  string
		sub  string
		rest []string
	}{
		{
			name: "bare command group",
			in:   []string{"auth"},
			cmd:  "auth",
		},
		{
			name: "command and subcommand",
			in:   []string{"cart", "list"},
			cmd:  "cart",
			sub:  "list",
		},
		{
			name: "subcommand with flags",
			in:   []string{"cart", "add", "-book-id", "3", "-quantity", "2"},
			cmd:  "cart",
			sub:  "add",
			rest: []string{"-book-id", "3", "-quantity", "2"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, sub, rest := splitArgs(tc.in)
			assert.Equal(t, tc.cmd, cmd)
			assert.Equal(t, tc.sub, sub)
			assert.Equal(t, tc.rest, rest)
		})
	}
}
