package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNamespaces(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"single", "default", []string{"default"}},
		{"trims and drops empty segments", "a, b ,, c", []string{"a", "b", "c"}},
		{"trailing comma", "prod,", []string{"prod"}},
		{"only whitespace", "  ,  ", []string{}},
		{"empty", "", []string{}},
		{"keeps display order", "z, a", []string{"z", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseNamespaces(tt.input))
		})
	}
}

func TestParseLabelSelector(t *testing.T) {
	selector, err := ParseLabelSelector("app=web, tier = db")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"app": "web", "tier": "db"}, selector)

	selector, err = ParseLabelSelector("  ")
	require.NoError(t, err)
	assert.Nil(t, selector)

	_, err = ParseLabelSelector("app")
	assert.Error(t, err)
}

func TestCreateDefaultRule(t *testing.T) {
	rule := CreateDefaultRule()

	assert.Equal(t, []string{"default"}, rule.Conditions.Namespaces)
	require.Len(t, rule.Patches, 1)
	assert.Equal(t, JSONPatch{Operation: PatchOperationReplace, Path: "/spec/replicas", Value: "1"}, rule.Patches[0])
	assert.Empty(t, rule.Validate(0))
}

func TestResourceModifierRule_Validate_CollectsPatchViolations(t *testing.T) {
	rule := ResourceModifierRule{
		Patches: []JSONPatch{
			{Operation: PatchOperationReplace, Path: "/spec/replicas", Value: "1"},
			{Operation: PatchOperationAdd, Path: "spec"},
			{Operation: PatchOperationCopy, Path: "/b"},
		},
	}

	violations := rule.Validate(3)

	require.Len(t, violations, 3)
	assert.Equal(t, Violation{RuleIndex: 3, PatchIndex: 1, Field: "path", Message: violations[0].Message}, violations[0])
	assert.Equal(t, "value", violations[1].Field)
	assert.Equal(t, 1, violations[1].PatchIndex)
	assert.Equal(t, "from", violations[2].Field)
	assert.Equal(t, 2, violations[2].PatchIndex)
}

func TestResourceModifierRule_Validate_EmptyPatchesIsValid(t *testing.T) {
	rule := ResourceModifierRule{Conditions: ResourceModifierConditions{Namespaces: []string{"default"}}}
	assert.Empty(t, rule.Validate(0))
}

func TestResourceModifierRule_Validate_LabelSelector(t *testing.T) {
	rule := ResourceModifierRule{
		Conditions: ResourceModifierConditions{
			LabelSelector: map[string]string{"app": "web", "bad key": "x", "tier": "not valid!"},
		},
	}

	violations := rule.Validate(0)

	require.Len(t, violations, 2)
	for _, v := range violations {
		assert.Equal(t, "labelSelector", v.Field)
		assert.Equal(t, -1, v.PatchIndex)
	}
	assert.Contains(t, violations[0].Message, "bad key")
	assert.Contains(t, violations[1].Message, "tier")
}

func TestResourceModifierRule_Clone_IsIndependent(t *testing.T) {
	rule := ResourceModifierRule{
		Conditions: ResourceModifierConditions{
			Namespaces:    []string{"a"},
			LabelSelector: map[string]string{"app": "web"},
		},
		Patches: []JSONPatch{CreateDefaultPatch()},
	}

	clone := rule.Clone()
	clone.Conditions.Namespaces[0] = "b"
	clone.Conditions.LabelSelector["app"] = "db"
	clone.Patches[0].Path = "/other"

	assert.Equal(t, "a", rule.Conditions.Namespaces[0])
	assert.Equal(t, "web", rule.Conditions.LabelSelector["app"])
	assert.Equal(t, "/spec/replicas", rule.Patches[0].Path)
}
