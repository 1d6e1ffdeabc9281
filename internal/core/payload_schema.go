package core

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"vdash/internal/core/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const restoreSchemaURL = "restore_with_modifications.schema.json"

//go:embed schemas/restore_with_modifications.schema.json
var restoreSchemaSource string

var (
	restoreSchemaOnce sync.Once
	restoreSchema     *jsonschema.Schema
	restoreSchemaErr  error
)

func compiledRestoreSchema() (*jsonschema.Schema, error) {
	restoreSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(restoreSchemaURL, strings.NewReader(restoreSchemaSource)); err != nil {
			restoreSchemaErr = fmt.Errorf("failed to load restore schema: %w", err)
			return
		}
		restoreSchema, restoreSchemaErr = compiler.Compile(restoreSchemaURL)
		if restoreSchemaErr != nil {
			restoreSchemaErr = fmt.Errorf("failed to compile restore schema: %w", restoreSchemaErr)
		}
	})
	return restoreSchema, restoreSchemaErr
}

// ValidateRestorePayload checks the encoded payload against the wire schema
// of the restore service.
func ValidateRestorePayload(payload domain.CreateRestoreWithModificationsRequest) error {
	schema, err := compiledRestoreSchema()
	if err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal restore payload: %w", err)
	}
	var document interface{}
	if err := json.Unmarshal(data, &document); err != nil {
		return fmt.Errorf("failed to decode restore payload: %w", err)
	}

	if err := schema.Validate(document); err != nil {
		return fmt.Errorf("restore payload does not match the wire schema: %w", err)
	}
	return nil
}
