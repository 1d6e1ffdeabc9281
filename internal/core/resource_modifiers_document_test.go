package core

import (
	"testing"

	"vdash/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	k8syaml "sigs.k8s.io/yaml"
)

func TestBuildResourceModifiersDocument(t *testing.T) {
	rules := []domain.ResourceModifierRule{
		{
			Conditions: domain.ResourceModifierConditions{
				Namespaces:    []string{"shop"},
				GroupResource: "deployments.apps",
				LabelSelector: map[string]string{"app": "web"},
			},
			Patches: []domain.JSONPatch{
				{Operation: domain.PatchOperationReplace, Path: "/spec/replicas", Value: "3"},
				{Operation: domain.PatchOperationRemove, Path: "/metadata/annotations"},
			},
		},
	}

	data, err := BuildResourceModifiersDocument(rules)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "v1", decoded["version"])

	parsed, err := ParseRuleFile(data)
	require.NoError(t, err)
	assert.Equal(t, rules, parsed.ResourceModifierRules)
}

func TestBuildResourceModifiersDocument_NoRules(t *testing.T) {
	data, err := BuildResourceModifiersDocument(nil)

	require.NoError(t, err)
	assert.Equal(t, "version: v1\nresourceModifierRules: []\n", string(data))
}

func TestBuildResourceModifiersConfigMap(t *testing.T) {
	payload := domain.CreateRestoreWithModificationsRequest{
		Name:       "restore-1",
		BackupName: "backup-1",
		ResourceModifierRules: []domain.ResourceModifierRule{
			{Patches: []domain.JSONPatch{{Operation: domain.PatchOperationRemove, Path: "/status"}}},
		},
	}

	configMap, err := BuildResourceModifiersConfigMap(payload, "velero")
	require.NoError(t, err)

	assert.Equal(t, "restore-resource-modifiers-restore-1", configMap.Name)
	assert.Equal(t, "velero", configMap.Namespace)
	assert.Equal(t, map[string]string{
		"velero.io/restore-name":       "restore-1",
		"app.kubernetes.io/managed-by": "vdash",
	}, configMap.Labels)
	assert.Contains(t, configMap.Data[ResourceModifiersDataKey], "operation: remove")

	manifest, err := RenderConfigMap(configMap)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, k8syaml.Unmarshal(manifest, &decoded))
	assert.Equal(t, "ConfigMap", decoded["kind"])
	assert.Equal(t, "v1", decoded["apiVersion"])
}
