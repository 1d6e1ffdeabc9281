package patcher

import (
	"encoding/json"
	"fmt"

	"vdash/internal/core/domain"
	"vdash/internal/ports"

	jsonpatch "gopkg.in/evanphx/json-patch.v4"
)

var _ ports.PatchApplier = (*Applier)(nil)

// operation is one RFC 6902 operation as understood by json-patch.
type operation struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	From  string          `json:"from,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
}

// Applier applies patches the way the restore service does: a string value
// that is itself valid JSON is embedded raw, so "1" patches in the number 1.
type Applier struct{}

func ProvideApplier() *Applier {
	return &Applier{}
}

func (a *Applier) Apply(document []byte, patches []domain.JSONPatch) ([]byte, error) {
	if len(patches) == 0 {
		return document, nil
	}

	operations := make([]operation, 0, len(patches))
	for i, patch := range patches {
		op, err := toOperation(patch)
		if err != nil {
			return nil, fmt.Errorf("patch %d: %w", i, err)
		}
		operations = append(operations, op)
	}

	raw, err := json.Marshal(operations)
	if err != nil {
		return nil, fmt.Errorf("failed to encode patches: %w", err)
	}
	decoded, err := jsonpatch.DecodePatch(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode patches: %w", err)
	}
	patched, err := decoded.Apply(document)
	if err != nil {
		return nil, fmt.Errorf("failed to apply patches: %w", err)
	}
	return patched, nil
}

func toOperation(patch domain.JSONPatch) (operation, error) {
	normalized := patch.Normalized()
	op := operation{Op: string(normalized.Operation), Path: normalized.Path, From: normalized.From}
	if !normalized.Operation.RequiresValue() {
		return op, nil
	}

	value, err := encodeValue(normalized.Value)
	if err != nil {
		return operation{}, err
	}
	op.Value = value
	return op, nil
}

func encodeValue(value interface{}) (json.RawMessage, error) {
	if text, ok := value.(string); ok && text != "" && json.Valid([]byte(text)) {
		return json.RawMessage(text), nil
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}
	return encoded, nil
}
