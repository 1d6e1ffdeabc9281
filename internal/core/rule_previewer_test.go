package core

import (
	"testing"

	"vdash/internal/adapters/patcher"
	"vdash/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	k8syaml "sigs.k8s.io/yaml"
)

const previewManifests = `apiVersion: apps/v1
kind: Deployment
metadata:
  name: web
  namespace: shop
  labels:
    app: web
spec:
  replicas: 5
---
apiVersion: v1
kind: Service
metadata:
  name: web
  namespace: shop
spec:
  type: ClusterIP
---
`

func TestRulePreviewer_Preview(t *testing.T) {
	previewer := ProvideRulePreviewer(patcher.ProvideApplier())
	rules := []domain.ResourceModifierRule{
		{
			Conditions: domain.ResourceModifierConditions{
				Namespaces:    []string{"shop"},
				GroupResource: "deployments.apps",
				LabelSelector: map[string]string{"app": "web"},
			},
			Patches: []domain.JSONPatch{
				{Operation: domain.PatchOperationReplace, Path: "/spec/replicas", Value: "1"},
			},
		},
		{
			Conditions: domain.ResourceModifierConditions{GroupResource: "*", ResourceNameRegex: "^w"},
			Patches: []domain.JSONPatch{
				{Operation: domain.PatchOperationAdd, Path: "/metadata/annotations", Value: `{"restored": "true"}`},
			},
		},
	}

	results, err := previewer.Preview(rules, []byte(previewManifests))
	require.NoError(t, err)
	require.Len(t, results, 2)

	deployment := results[0]
	assert.Equal(t, "Deployment", deployment.Kind)
	assert.Equal(t, "deployments.apps", deployment.GroupResource)
	assert.Equal(t, []int{0, 1}, deployment.MatchedRules)
	assert.Empty(t, deployment.Failures)

	var patched map[string]interface{}
	require.NoError(t, k8syaml.Unmarshal(deployment.Patched, &patched))
	spec := patched["spec"].(map[string]interface{})
	assert.Equal(t, float64(1), spec["replicas"])
	metadata := patched["metadata"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"restored": "true"}, metadata["annotations"])

	service := results[1]
	assert.Equal(t, "services", service.GroupResource)
	assert.Equal(t, []int{1}, service.MatchedRules)
}

func TestRulePreviewer_Preview_RecordsFailures(t *testing.T) {
	previewer := ProvideRulePreviewer(patcher.ProvideApplier())
	rules := []domain.ResourceModifierRule{
		{
			Patches: []domain.JSONPatch{
				{Operation: domain.PatchOperationReplace, Path: "/spec/missing/field", Value: "1"},
			},
		},
		{
			Patches: []domain.JSONPatch{
				{Operation: domain.PatchOperationAdd, Path: "/metadata/labels", Value: `{"a": "b"}`},
			},
		},
	}

	results, err := previewer.Preview(rules, []byte("kind: ConfigMap\napiVersion: v1\nmetadata:\n  name: settings\n"))
	require.NoError(t, err)
	require.Len(t, results, 1)

	result := results[0]
	assert.Equal(t, []int{0, 1}, result.MatchedRules)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, 0, result.Failures[0].RuleIndex)
	assert.Contains(t, string(result.Patched), "a: b")
}

func TestRulePreviewer_Preview_NoMatch(t *testing.T) {
	previewer := ProvideRulePreviewer(patcher.ProvideApplier())
	rules := []domain.ResourceModifierRule{
		{
			Conditions: domain.ResourceModifierConditions{Namespaces: []string{"other"}},
			Patches:    []domain.JSONPatch{{Operation: domain.PatchOperationRemove, Path: "/spec"}},
		},
	}

	results, err := previewer.Preview(rules, []byte(previewManifests))

	require.NoError(t, err)
	for _, result := range results {
		assert.Empty(t, result.MatchedRules)
		assert.Contains(t, string(result.Patched), "spec:")
	}
}

func TestRulePreviewer_Preview_InvalidRegex(t *testing.T) {
	previewer := ProvideRulePreviewer(patcher.ProvideApplier())
	rules := []domain.ResourceModifierRule{
		{Conditions: domain.ResourceModifierConditions{ResourceNameRegex: "("}},
	}

	_, err := previewer.Preview(rules, []byte(previewManifests))

	assert.ErrorContains(t, err, "rule 0: invalid resourceNameRegex")
}

func TestSplitDocuments(t *testing.T) {
	tests := []struct {
		name     string
		stream   string
		expected []string
	}{
		{"leading and repeated separators", "---\na: 1\n---\n\n---  \nb: 2\n", []string{"---\na: 1\n", "b: 2\n"}},
		{"separator with comment", "a: 1\n--- # second\nb: 2\n", []string{"a: 1\n", "b: 2\n"}},
		{"no trailing newline", "a: 1", []string{"a: 1\n"}},
		{"empty stream", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			documents, err := splitDocuments([]byte(tt.stream))
			require.NoError(t, err)

			var actual []string
			for _, document := range documents {
				actual = append(actual, string(document))
			}
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestSplitDocuments_InvalidSeparator(t *testing.T) {
	_, err := splitDocuments([]byte("a: 1\n--- b: 2\n"))

	assert.ErrorContains(t, err, "failed to read manifest stream")
}

func TestRulePreviewer_Preview_SeparatorWithComment(t *testing.T) {
	previewer := ProvideRulePreviewer(patcher.ProvideApplier())
	manifests := "apiVersion: v1\nkind: ConfigMap\nmetadata:\n  name: first\n--- # second\napiVersion: v1\nkind: ConfigMap\nmetadata:\n  name: second\n"

	results, err := previewer.Preview(nil, []byte(manifests))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "first", results[0].Name)
	assert.Equal(t, "second", results[1].Name)
}
