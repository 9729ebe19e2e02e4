package validate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/open-edge-platform/report-tools/internal/config/schema"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"sigs.k8s.io/yaml"
)

const (
	configSchemaName   = "config.schema.json"
	versionsSchemaName = "versions.schema.json"
)

// ValidateAgainstSchema compiles schemaData under name and validates the JSON document data
// against it. A non-empty ref selects a sub-schema such as "#/$defs/verify".
func ValidateAgainstSchema(name string, schemaData []byte, data []byte, ref string) error {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(name, bytes.NewReader(schemaData)); err != nil {
		return fmt.Errorf("loading schema %s: %w", name, err)
	}

	sch, err := compiler.Compile(name + ref)
	if err != nil {
		return fmt.Errorf("compiling schema %s%s: %w", name, ref, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// ValidateConfigJSON validates a global configuration document in JSON form.
func ValidateConfigJSON(data []byte) error {
	return ValidateAgainstSchema(configSchemaName, schema.ConfigSchema, data, "")
}

// ValidateConfigYAML converts a YAML configuration document to JSON and validates it.
func ValidateConfigYAML(data []byte) error {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("converting config YAML to JSON: %w", err)
	}
	return ValidateConfigJSON(jsonData)
}

// ValidateVersionsJSON validates a published versions list.
func ValidateVersionsJSON(data []byte) error {
	return ValidateAgainstSchema(versionsSchemaName, schema.VersionsSchema, data, "")
}
