package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	// parse schema
	var schema map[string]interface{}
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]interface{}
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	// every top-level section of the config must be declared by the schema
	if props, ok := schemaProperties(schema); ok {
		for key := range configMap {
			if _, found := props[key]; !found {
				return fmt.Errorf("section %q is not described by schema", key)
			}
		}
	}

	// basic validation - check required fields match
	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// schemaProperties finds properties of the Config definition, following $ref if present
func schemaProperties(schema map[string]interface{}) (map[string]interface{}, bool) {
	if props, ok := schema["properties"].(map[string]interface{}); ok {
		return props, true
	}
	defs, ok := schema["$defs"].(map[string]interface{})
	if !ok {
		return nil, false
	}
	cfgDef, ok := defs["Config"].(map[string]interface{})
	if !ok {
		return nil, false
	}
	props, ok := cfgDef["properties"].(map[string]interface{})
	return props, ok
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}
	if cfg.LLM.Headlines == 0 {
		return fmt.Errorf("llm.headlines is required")
	}
	if cfg.Storage.Backend == BackendPostgres && cfg.Storage.DSN == "" {
		return fmt.Errorf("storage.dsn is required for postgres backend")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
