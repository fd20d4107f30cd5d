package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON Schema for one of the config documents:
// "physics", "entities" or "stage".
func Schema(doc string) ([]byte, error) {
	var v any
	switch doc {
	case "physics":
		v = &PhysicsConfig{}
	case "entities":
		v = &EntitiesConfig{}
	case "stage":
		v = &StageConfig{}
	default:
		return nil, fmt.Errorf("unknown config document %q", doc)
	}

	schema := jsonschema.Reflect(v)
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s schema: %w", doc, err)
	}
	return data, nil
}
