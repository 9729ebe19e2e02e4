package config

import (
	"os"
	"testing"
)

// FuzzLoadGlobalConfig tests LoadGlobalConfig with various file inputs
func FuzzLoadGlobalConfig(f *testing.F) {
	f.Add("logging:\n  level: debug\n")
	f.Add("{}")
	f.Add("")
	f.Add("invalid: yaml: content: [")
	f.Add("verify:\n  maxSizeMB: 0.5\n  maxErrors: 1\n")
	f.Add("verify:\n  httpTimeout: not-a-duration\n")
	f.Add("---\nlogging:\n  level: info")
	f.Add("logging: null\nverify: null")

	f.Fuzz(func(t *testing.T, yamlContent string) {
		tempFile := t.TempDir() + "/config.yml"
		if err := os.WriteFile(tempFile, []byte(yamlContent), 0644); err != nil {
			t.Skip("Failed to create temp file")
		}

		cfg, err := LoadGlobalConfig(tempFile)
		if err != nil {
			if cfg != nil {
				t.Error("Expected nil config when error occurred")
			}
		} else if cfg == nil {
			t.Error("Expected non-nil config when no error occurred")
		}
	})
}
