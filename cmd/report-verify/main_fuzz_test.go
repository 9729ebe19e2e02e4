package main

import (
	"strings"
	"testing"
)

// FuzzCommandLineArgs tests that flag parsing never panics
func FuzzCommandLineArgs(f *testing.F) {
	f.Add("--help")
	f.Add("-P board.xml -V 1")
	f.Add("-P board.xml -V notanumber")
	f.Add("-S -1 -E x")
	f.Add("--max-size=1e309")
	f.Add("")

	f.Fuzz(func(t *testing.T, args string) {
		cmd := createRootCommand()
		if err := cmd.ParseFlags(strings.Fields(args)); err != nil {
			return
		}
		if cmd.Use == "" || cmd.Short == "" {
			t.Fatal("command metadata lost during flag parsing")
		}
	})
}
