package validate

import "testing"

func TestValidateVersionsJSON(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{name: "strings", data: `["v2.1", "v2.2"]`},
		{name: "objects", data: `[{"version": "v2.1", "date": "2020-01-01"}]`},
		{name: "mixed", data: `["v2.1", {"version": "v2.2"}]`},
		{name: "empty list", data: `[]`},
		{name: "object root", data: `{"version": "v2.1"}`, wantErr: true},
		{name: "scalar elements", data: `[1, null, "v2.1"]`},
		{name: "object without version", data: `[{"tag": "v2.1"}]`, wantErr: true},
		{name: "non-string version", data: `[{"version": 2}]`, wantErr: true},
		{name: "not json", data: `<versions/>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVersionsJSON([]byte(tt.data))
			if tt.wantErr && err == nil {
				t.Fatalf("expected error for %s", tt.data)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateConfigYAML(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{name: "full", data: `
logging:
  level: debug
convert:
  outputDir: /tmp/h5
  defaultVersion: unknow
verify:
  versionsURL: https://example.com/versions.json
  httpTimeout: 30s
  maxSizeMB: 2.5
  maxErrors: 10
  maxFailures: 0
`},
		{name: "empty object", data: `{}`},
		{name: "unknown top-level key", data: "workers: 4\n", wantErr: true},
		{name: "bad level", data: "logging:\n  level: loud\n", wantErr: true},
		{name: "negative errors", data: "verify:\n  maxErrors: -1\n", wantErr: true},
		{name: "zero size", data: "verify:\n  maxSizeMB: 0\n", wantErr: true},
		{name: "broken yaml", data: "logging: [", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfigYAML([]byte(tt.data))
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateAgainstSchemaWithRef(t *testing.T) {
	schema := []byte(`{
		"$defs": {
			"item": {"type": "string", "minLength": 2}
		}
	}`)

	if err := ValidateAgainstSchema("ref-schema.json", schema, []byte(`"ok"`), "#/$defs/item"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateAgainstSchema("ref-schema.json", schema, []byte(`"x"`), "#/$defs/item"); err == nil {
		t.Fatal("expected minLength violation")
	}
}
