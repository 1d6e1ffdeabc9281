package domain

import (
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/util/validation"
)

const (
	DefaultRequestTimeout  = 30 * time.Second
	DefaultVeleroNamespace = "velero"
)

// Config holds user settings read from ~/.vdash/config.yaml.
type Config struct {
	RequestTimeout  time.Duration `yaml:"requestTimeout"`
	VeleroNamespace string        `yaml:"veleroNamespace"`
	Kubeconfig      string        `yaml:"kubeconfig,omitempty"`
}

func CreateDefaultConfig() Config {
	return Config{
		RequestTimeout:  DefaultRequestTimeout,
		VeleroNamespace: DefaultVeleroNamespace,
	}
}

// ApplyDefaults fills unset fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.VeleroNamespace == "" {
		c.VeleroNamespace = DefaultVeleroNamespace
	}
}

func (c *Config) Validate() error {
	if c.RequestTimeout < 0 {
		return fmt.Errorf("requestTimeout must not be negative")
	}
	if errs := validation.IsDNS1123Label(c.VeleroNamespace); len(errs) > 0 {
		return fmt.Errorf("veleroNamespace '%s' is not a valid namespace name: %v", c.VeleroNamespace, errs)
	}
	return nil
}
