package handler

import (
	"context"
	"fmt"
	"os"
	"strings"

	"vdash/internal/cli/output"
	"vdash/internal/core"
	"vdash/internal/ports"
)

type RulesCommandHandler struct {
	configRepository core.ConfigRepository
	publisher        ports.ConfigMapPublisher
	previewer        *core.RulePreviewer
}

func ProvideRulesCommandHandler(
	configRepository core.ConfigRepository,
	publisher ports.ConfigMapPublisher,
	previewer *core.RulePreviewer,
) RulesCommandHandler {
	return RulesCommandHandler{
		configRepository: configRepository,
		publisher:        publisher,
		previewer:        previewer,
	}
}

func (h *RulesCommandHandler) HandleValidate(path string) error {
	builder, err := loadRuleSet(path)
	if err != nil {
		return err
	}
	if err := builder.Validate(); err != nil {
		return err
	}
	output.PrintSuccess(fmt.Sprintf(
		"%d %s valid",
		builder.Len(),
		output.Plural(builder.Len(), "rule is", "rules are"),
	))
	return nil
}

// HandleExport renders the rule file as the resource-modifiers ConfigMap for
// the named restore. With apply it is written to the cluster of the current
// kubeconfig context instead of printed.
func (h *RulesCommandHandler) HandleExport(ctx context.Context, path, restoreName string, apply bool) error {
	if strings.TrimSpace(restoreName) == "" {
		return fmt.Errorf("restore name cannot be empty")
	}
	config, err := h.configRepository.LoadConfig()
	if err != nil {
		return err
	}
	builder, err := loadRuleSet(path)
	if err != nil {
		return err
	}
	payload, err := builder.Serialize(core.RestoreTarget{Name: restoreName})
	if err != nil {
		return err
	}
	configMap, err := core.BuildResourceModifiersConfigMap(payload, config.VeleroNamespace)
	if err != nil {
		return err
	}

	if !apply {
		manifest, err := core.RenderConfigMap(configMap)
		if err != nil {
			return err
		}
		fmt.Print(string(manifest))
		return nil
	}

	output.PrintStep(fmt.Sprintf("Publishing ConfigMap %s/%s", configMap.Namespace, configMap.Name))
	if err := h.publisher.Publish(ctx, configMap.Namespace, configMap.Name, configMap.Labels, configMap.Data); err != nil {
		return err
	}
	output.PrintSuccess(fmt.Sprintf("ConfigMap %s/%s applied", configMap.Namespace, configMap.Name))
	return nil
}

func (h *RulesCommandHandler) HandlePreview(rulesPath, manifestPath string) error {
	builder, err := loadRuleSet(rulesPath)
	if err != nil {
		return err
	}
	if err := builder.Validate(); err != nil {
		return err
	}
	manifests, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("failed to read manifests: %w", err)
	}

	results, err := h.previewer.Preview(builder.Rules(), manifests)
	if err != nil {
		return err
	}
	for i, result := range results {
		if i > 0 {
			fmt.Println("---")
		}
		title := fmt.Sprintf("%s %s", result.Kind, result.Name)
		if result.Namespace != "" {
			title = fmt.Sprintf("%s %s/%s", result.Kind, result.Namespace, result.Name)
		}
		fmt.Printf("# %s\n", output.Bold(title))
		if len(result.MatchedRules) == 0 {
			fmt.Printf("# %s\n", output.Dim("no rules matched"))
		} else {
			fmt.Printf("# %s\n", output.Secondary(fmt.Sprintf("matched rules: %s", joinInts(result.MatchedRules))))
		}
		for _, failure := range result.Failures {
			output.PrintWarning(fmt.Sprintf("%s: rule %d not applied: %v", title, failure.RuleIndex, failure.Err))
		}
		fmt.Print(string(result.Patched))
	}
	return nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}
