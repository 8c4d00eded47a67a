package llm

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// orderSchemaJSON is the shape of an extracted order. Only items is
// required: early in a conversation there is legitimately no date or
// address yet.
const orderSchemaJSON = `{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"items": {
			"type": "array",
			"items": {
				"type": "object",
				"additionalProperties": false,
				"properties": {
					"product":  {"type": "string", "minLength": 1},
					"quantity": {"type": "string"}
				},
				"required": ["product"]
			}
		},
		"delivery_date":    {"type": "string"},
		"delivery_address": {"type": "string"},
		"notes":            {"type": "string"}
	},
	"required": ["items"]
}`

var orderSchema = jsonschema.MustCompileString("order.schema.json", orderSchemaJSON)

// ValidateOrderJSON checks sanitized collaborator output against the order
// schema before it gets decoded into an OrderRecord.
func ValidateOrderJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal order json: %w", err)
	}
	if err := orderSchema.Validate(v); err != nil {
		return fmt.Errorf("order json does not match schema: %w", err)
	}
	return nil
}
