package ports

import "context"

// ConfigMapPublisher creates ConfigMaps in the cluster selected by the local
// kubeconfig.
type ConfigMapPublisher interface {
	// Publish creates the ConfigMap, or replaces its data if it already exists.
	Publish(ctx context.Context, namespace, name string, labels, data map[string]string) error
}
