package batch

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed receipt.schema.json
var receiptSchema []byte

const schemaURL = "receipt.schema.json"

// CompileSchema compiles the published receipt JSON schema.
func CompileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, bytes.NewReader(receiptSchema)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// SchemaJSON returns the raw schema document.
func SchemaJSON() []byte {
	out := make([]byte, len(receiptSchema))
	copy(out, receiptSchema)
	return out
}

func validateDocument(schema *jsonschema.Schema, data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal receipt: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("receipt does not match schema: %w", err)
	}
	return nil
}
