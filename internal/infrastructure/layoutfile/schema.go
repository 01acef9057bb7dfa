package layoutfile

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/bnema/dockgrid/internal/domain/entity"
)

const gridNodeDef = "GridNodeState"

// Schema returns the JSON schema of a serialized layout file.
//
// Grid nodes, orientations and lock modes have hand-written JSON encodings,
// so their schemas are mapped instead of reflected.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		Mapper:                    mapType,
	}
	schema := r.Reflect(&entity.SerializedLayout{})
	if schema.Definitions == nil {
		schema.Definitions = jsonschema.Definitions{}
	}
	schema.Definitions[gridNodeDef] = gridNodeSchema()

	schema.ID = "https://github.com/bnema/dockgrid/layout.schema.json"
	schema.Title = "dockgrid layout"
	schema.Description = "Serialized docking layout: grid tree, panels, floating and popout groups"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

func mapType(t reflect.Type) *jsonschema.Schema {
	switch t {
	case reflect.TypeOf(entity.GridNodeState{}):
		return &jsonschema.Schema{Ref: "#/$defs/" + gridNodeDef}
	case reflect.TypeOf(entity.OrientationHorizontal):
		return &jsonschema.Schema{
			Type: "string",
			Enum: []any{entity.OrientationHorizontal.String(), entity.OrientationVertical.String()},
		}
	case reflect.TypeOf(entity.LockNone):
		return &jsonschema.Schema{
			OneOf: []*jsonschema.Schema{
				{Type: "boolean"},
				{Type: "string", Const: "no-drop-target"},
			},
		}
	}
	return nil
}

func gridNodeSchema() *jsonschema.Schema {
	props := jsonschema.NewProperties()
	props.Set("type", &jsonschema.Schema{
		Type: "string",
		Enum: []any{string(entity.NodeBranch), string(entity.NodeLeaf)},
	})
	props.Set("data", &jsonschema.Schema{
		Description: "child nodes of a branch, or the group of a leaf",
		OneOf: []*jsonschema.Schema{
			{Type: "array", Items: &jsonschema.Schema{Ref: "#/$defs/" + gridNodeDef}},
			{Ref: "#/$defs/GroupState"},
		},
	})
	props.Set("size", &jsonschema.Schema{Type: "number", Minimum: json.Number("0")})
	props.Set("visible", &jsonschema.Schema{Type: "boolean"})

	return &jsonschema.Schema{
		Type:                 "object",
		Properties:           props,
		Required:             []string{"type", "data"},
		AdditionalProperties: jsonschema.FalseSchema,
	}
}
