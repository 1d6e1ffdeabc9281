package patcher

import (
	"testing"

	"vdash/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deployment = `{"metadata":{"name":"web","labels":{"app":"web"}},"spec":{"replicas":3,"template":{"spec":{}}}}`

func TestApplier_Apply(t *testing.T) {
	tests := []struct {
		name     string
		patches  []domain.JSONPatch
		expected string
	}{
		{
			name:     "replace with JSON number given as string",
			patches:  []domain.JSONPatch{{Operation: domain.PatchOperationReplace, Path: "/spec/replicas", Value: "1"}},
			expected: `{"metadata":{"name":"web","labels":{"app":"web"}},"spec":{"replicas":1,"template":{"spec":{}}}}`,
		},
		{
			name:     "add plain string",
			patches:  []domain.JSONPatch{{Operation: domain.PatchOperationAdd, Path: "/metadata/labels/env", Value: "staging"}},
			expected: `{"metadata":{"name":"web","labels":{"app":"web","env":"staging"}},"spec":{"replicas":3,"template":{"spec":{}}}}`,
		},
		{
			name:     "add structured value",
			patches:  []domain.JSONPatch{{Operation: domain.PatchOperationAdd, Path: "/spec/template/spec/nodeSelector", Value: map[string]interface{}{"zone": "b"}}},
			expected: `{"metadata":{"name":"web","labels":{"app":"web"}},"spec":{"replicas":3,"template":{"spec":{"nodeSelector":{"zone":"b"}}}}}`,
		},
		{
			name: "patches apply in order",
			patches: []domain.JSONPatch{
				{Operation: domain.PatchOperationCopy, Path: "/metadata/labels/copy", From: "/metadata/labels/app"},
				{Operation: domain.PatchOperationRemove, Path: "/metadata/labels/app", Value: "ignored"},
			},
			expected: `{"metadata":{"name":"web","labels":{"copy":"web"}},"spec":{"replicas":3,"template":{"spec":{}}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sut := ProvideApplier()

			patched, err := sut.Apply([]byte(deployment), tt.patches)

			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(patched))
		})
	}
}

func TestApplier_Apply_NoPatchesReturnsDocument(t *testing.T) {
	sut := ProvideApplier()

	patched, err := sut.Apply([]byte(deployment), nil)

	require.NoError(t, err)
	assert.Equal(t, deployment, string(patched))
}

func TestApplier_Apply_FailedTest(t *testing.T) {
	sut := ProvideApplier()

	_, err := sut.Apply([]byte(deployment), []domain.JSONPatch{
		{Operation: domain.PatchOperationTest, Path: "/spec/replicas", Value: "5"},
		{Operation: domain.PatchOperationReplace, Path: "/spec/replicas", Value: "1"},
	})

	assert.Error(t, err)
}

func TestApplier_Apply_MissingTarget(t *testing.T) {
	sut := ProvideApplier()

	_, err := sut.Apply([]byte(deployment), []domain.JSONPatch{
		{Operation: domain.PatchOperationRemove, Path: "/spec/missing"},
	})

	assert.Error(t, err)
}
