package domain

import (
	"encoding/json"
	"fmt"

	"github.com/go-openapi/jsonpointer"
)

type PatchOperation string

const (
	PatchOperationAdd     PatchOperation = "add"
	PatchOperationRemove  PatchOperation = "remove"
	PatchOperationReplace PatchOperation = "replace"
	PatchOperationCopy    PatchOperation = "copy"
	PatchOperationMove    PatchOperation = "move"
	PatchOperationTest    PatchOperation = "test"
)

var PatchOperations = []PatchOperation{
	PatchOperationAdd,
	PatchOperationRemove,
	PatchOperationReplace,
	PatchOperationCopy,
	PatchOperationMove,
	PatchOperationTest,
}

func (o PatchOperation) IsValid() bool {
	for _, op := range PatchOperations {
		if o == op {
			return true
		}
	}
	return false
}

// RequiresValue reports whether the operation needs a value.
func (o PatchOperation) RequiresValue() bool {
	return o == PatchOperationAdd || o == PatchOperationReplace || o == PatchOperationTest
}

// RequiresFrom reports whether the operation needs a source pointer.
func (o PatchOperation) RequiresFrom() bool {
	return o == PatchOperationCopy || o == PatchOperationMove
}

// JSONPatch is a single JSON Patch operation. A nil Value means no value was
// given; an empty string is a value.
type JSONPatch struct {
	Operation PatchOperation `json:"operation" yaml:"operation"`
	Path      string         `json:"path" yaml:"path"`
	Value     interface{}    `json:"value,omitempty" yaml:"value,omitempty"`
	From      string         `json:"from,omitempty" yaml:"from,omitempty"`
}

func CreateDefaultPatch() JSONPatch {
	return JSONPatch{Operation: PatchOperationReplace, Path: "/spec/replicas", Value: "1"}
}

// CreateBlankPatch is the patch appended by AddPatch: a replace with no path
// that the user is expected to fill in.
func CreateBlankPatch() JSONPatch {
	return JSONPatch{Operation: PatchOperationReplace, Path: "", Value: ""}
}

// Validate returns every violation of the required-field table for the patch
// at the given position.
func (p JSONPatch) Validate(ruleIndex, patchIndex int) []Violation {
	var violations []Violation
	add := func(field, message string) {
		violations = append(
			violations,
			Violation{RuleIndex: ruleIndex, PatchIndex: patchIndex, Field: field, Message: message},
		)
	}

	if !p.Operation.IsValid() {
		add("operation", fmt.Sprintf("must be one of add, remove, replace, copy, move, test (got '%s')", p.Operation))
	}
	if msg := validatePointer(p.Path); msg != "" {
		add("path", msg)
	}
	if p.Operation.RequiresValue() && p.Value == nil {
		add("value", fmt.Sprintf("is required for %s", p.Operation))
	}
	if p.Operation.RequiresFrom() {
		if p.From == "" {
			add("from", fmt.Sprintf("is required for %s", p.Operation))
		} else if msg := validatePointer(p.From); msg != "" {
			add("from", msg)
		}
	}
	return violations
}

// Normalized drops the fields the operation does not use so that ignored
// input never reaches the wire.
func (p JSONPatch) Normalized() JSONPatch {
	out := JSONPatch{Operation: p.Operation, Path: p.Path}
	if p.Operation != PatchOperationRemove && !p.Operation.RequiresFrom() {
		out.Value = p.Value
	}
	if p.Operation.RequiresFrom() {
		out.From = p.From
	}
	return out
}

// DeepCopy returns a copy of the patch that shares no value storage with p.
func (p JSONPatch) DeepCopy() JSONPatch {
	out := p
	out.Value = DeepCopyValue(p.Value)
	return out
}

// DeepCopyValue copies a decoded JSON or YAML value. Composite types other
// than generic maps and slices are copied through a JSON round trip.
func DeepCopyValue(value interface{}) interface{} {
	switch v := value.(type) {
	case nil, string, bool, int, int32, int64, float32, float64, json.Number:
		return v
	case map[string]interface{}:
		if v == nil {
			return v
		}
		out := make(map[string]interface{}, len(v))
		for key, item := range v {
			out[key] = DeepCopyValue(item)
		}
		return out
	case []interface{}:
		if v == nil {
			return v
		}
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = DeepCopyValue(item)
		}
		return out
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return v
		}
		var out interface{}
		if err := json.Unmarshal(data, &out); err != nil {
			return v
		}
		return out
	}
}

func validatePointer(pointer string) string {
	if pointer == "" {
		return "is required"
	}
	if _, err := jsonpointer.New(pointer); err != nil || pointer[0] != '/' {
		return fmt.Sprintf("must be a JSON pointer starting with '/' (got '%s')", pointer)
	}
	return ""
}
