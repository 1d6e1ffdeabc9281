package handler

import (
	"fmt"

	"vdash/internal/cli/output"
	"vdash/internal/core"
	"vdash/internal/core/domain"

	"gopkg.in/yaml.v3"
)

type ConfigCommandHandler struct {
	configRepository core.ConfigRepository
}

func ProvideConfigCommandHandler(configRepository core.ConfigRepository) ConfigCommandHandler {
	return ConfigCommandHandler{configRepository: configRepository}
}

func (h *ConfigCommandHandler) HandleInit() error {
	exists, err := h.configRepository.ConfigExists()
	if err != nil {
		return err
	}
	if exists {
		output.PrintInfo("Configuration already exists at ~/.vdash/config.yaml")
		return nil
	}

	config := domain.CreateDefaultConfig()
	if err := h.configRepository.SaveConfig(&config); err != nil {
		return err
	}
	output.PrintSuccess("Configuration written to ~/.vdash/config.yaml")
	return nil
}

func (h *ConfigCommandHandler) HandleShow() error {
	config, err := h.configRepository.LoadConfig()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %v", err)
	}
	fmt.Print(string(data))
	return nil
}
