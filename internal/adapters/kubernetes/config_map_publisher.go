package kubernetes

import (
	"context"
	"fmt"

	"vdash/internal/core"
	"vdash/internal/ports"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

var _ ports.ConfigMapPublisher = (*ConfigMapPublisher)(nil)

// ConfigMapPublisher writes ConfigMaps with client-go, using the kubeconfig
// from the vdash config or the default loading rules. The client is created
// on first use so commands that never publish do not need a kubeconfig.
type ConfigMapPublisher struct {
	configRepository core.ConfigRepository
	clientSet        kubernetes.Interface
}

func ProvideConfigMapPublisher(configRepository core.ConfigRepository) *ConfigMapPublisher {
	return &ConfigMapPublisher{configRepository: configRepository}
}

func NewConfigMapPublisher(clientSet kubernetes.Interface) *ConfigMapPublisher {
	return &ConfigMapPublisher{clientSet: clientSet}
}

func (p *ConfigMapPublisher) client() (kubernetes.Interface, error) {
	if p.clientSet != nil {
		return p.clientSet, nil
	}

	config, err := p.configRepository.LoadConfig()
	if err != nil {
		return nil, err
	}

	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if config.Kubeconfig != "" {
		loadingRules.ExplicitPath = config.Kubeconfig
	}
	restConfig, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		loadingRules,
		&clientcmd.ConfigOverrides{},
	).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes config: %v", err)
	}

	clientSet, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %v", err)
	}
	p.clientSet = clientSet
	return clientSet, nil
}

func (p *ConfigMapPublisher) Publish(
	ctx context.Context,
	namespace, name string,
	labels, data map[string]string,
) error {
	clientSet, err := p.client()
	if err != nil {
		return err
	}
	configMaps := clientSet.CoreV1().ConfigMaps(namespace)
	configMap := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace, Labels: labels},
		Data:       data,
	}

	_, err = configMaps.Create(ctx, configMap, metav1.CreateOptions{})
	if err == nil {
		return nil
	}
	if !apierrors.IsAlreadyExists(err) {
		return fmt.Errorf("failed to create config map %s/%s: %w", namespace, name, err)
	}

	existing, err := configMaps.Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return fmt.Errorf("failed to get config map %s/%s: %w", namespace, name, err)
	}
	if existing.Labels == nil {
		existing.Labels = map[string]string{}
	}
	for k, v := range labels {
		existing.Labels[k] = v
	}
	existing.Data = data
	if _, err := configMaps.Update(ctx, existing, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("failed to update config map %s/%s: %w", namespace, name, err)
	}
	return nil
}
