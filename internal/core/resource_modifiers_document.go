package core

import (
	"fmt"

	"vdash/internal/core/domain"

	"gopkg.in/yaml.v3"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	k8syaml "sigs.k8s.io/yaml"
)

const (
	ResourceModifiersVersion = "v1"
	ResourceModifiersDataKey = "resource-modifiers.yaml"

	restoreNameLabel = "velero.io/restore-name"
	managedByLabel   = "app.kubernetes.io/managed-by"
	managedByValue   = "vdash"
)

// ResourceModifiersDocument is the document the restore service stores in a
// ConfigMap and hands to Velero.
type ResourceModifiersDocument struct {
	Version               string                        `yaml:"version"`
	ResourceModifierRules []domain.ResourceModifierRule `yaml:"resourceModifierRules"`
}

// BuildResourceModifiersDocument renders rules as resource-modifiers YAML.
func BuildResourceModifiersDocument(rules []domain.ResourceModifierRule) ([]byte, error) {
	document := ResourceModifiersDocument{
		Version:               ResourceModifiersVersion,
		ResourceModifierRules: rules,
	}
	if document.ResourceModifierRules == nil {
		document.ResourceModifierRules = []domain.ResourceModifierRule{}
	}
	data, err := yaml.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource modifiers: %w", err)
	}
	return data, nil
}

// ResourceModifiersConfigMapName is the ConfigMap name used for a restore.
func ResourceModifiersConfigMapName(restoreName string) string {
	return fmt.Sprintf("restore-resource-modifiers-%s", restoreName)
}

func ResourceModifiersLabels(restoreName string) map[string]string {
	return map[string]string{
		restoreNameLabel: restoreName,
		managedByLabel:   managedByValue,
	}
}

// BuildResourceModifiersConfigMap wraps the payload's rules in the ConfigMap
// the restore references.
func BuildResourceModifiersConfigMap(
	payload domain.CreateRestoreWithModificationsRequest,
	namespace string,
) (*corev1.ConfigMap, error) {
	document, err := BuildResourceModifiersDocument(payload.ResourceModifierRules)
	if err != nil {
		return nil, err
	}
	return &corev1.ConfigMap{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "ConfigMap"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      ResourceModifiersConfigMapName(payload.Name),
			Namespace: namespace,
			Labels:    ResourceModifiersLabels(payload.Name),
		},
		Data: map[string]string{ResourceModifiersDataKey: string(document)},
	}, nil
}

// RenderConfigMap returns the ConfigMap as a YAML manifest.
func RenderConfigMap(configMap *corev1.ConfigMap) ([]byte, error) {
	data, err := k8syaml.Marshal(configMap)
	if err != nil {
		return nil, fmt.Errorf("failed to render config map: %w", err)
	}
	return data, nil
}
