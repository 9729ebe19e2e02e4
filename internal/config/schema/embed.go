// Package schema holds the JSON schemas used to validate configuration and remote payloads.
package schema

import _ "embed"

//go:embed config.schema.json
var ConfigSchema []byte

//go:embed versions.schema.json
var VersionsSchema []byte
