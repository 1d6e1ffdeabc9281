package core

import (
	"fmt"
	"path/filepath"

	"vdash/internal/core/domain"
	"vdash/internal/ports"

	"gopkg.in/yaml.v3"
)

var configFilePath = filepath.Join("~", ".vdash", "config.yaml")

type ConfigRepository interface {
	LoadConfig() (*domain.Config, error)
	SaveConfig(*domain.Config) error
	ConfigExists() (bool, error)
}

// FileSystemConfigRepository reads ~/.vdash/config.yaml. A missing file is
// not an error; defaults are used instead.
type FileSystemConfigRepository struct {
	fileService ports.FileSystem
	config      *domain.Config
}

func ProvideFileSystemConfigRepository(fileService ports.FileSystem) *FileSystemConfigRepository {
	return &FileSystemConfigRepository{fileService: fileService}
}

func (c *FileSystemConfigRepository) LoadConfig() (*domain.Config, error) {
	if c.config != nil {
		return c.config, nil
	}

	config := domain.CreateDefaultConfig()
	exists, err := c.fileService.FileExists(configFilePath)
	if err != nil {
		return nil, err
	}
	if exists {
		data, err := c.fileService.ReadFile(configFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %v", err)
		}
		config = domain.Config{}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %v", err)
		}
		config.ApplyDefaults()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %v", err)
	}

	c.config = &config
	return &config, nil
}

func (c *FileSystemConfigRepository) SaveConfig(config *domain.Config) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %v", err)
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %v", err)
	}
	if err := c.fileService.WriteFile(configFilePath, data, ports.ReadWrite); err != nil {
		return err
	}
	c.config = config
	return nil
}

func (c *FileSystemConfigRepository) ConfigExists() (bool, error) {
	return c.fileService.FileExists(configFilePath)
}
