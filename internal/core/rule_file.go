package core

import (
	"fmt"

	"vdash/internal/core/domain"

	"gopkg.in/yaml.v3"
)

// RuleFile is the on-disk form of a rule set. It accepts the same layout as
// the resource-modifiers document, so an exported document can be reused.
type RuleFile struct {
	Version               string                        `yaml:"version,omitempty"`
	ResourceModifierRules []domain.ResourceModifierRule `yaml:"resourceModifierRules"`
}

// ParseRuleFile decodes a YAML or JSON rule file.
func ParseRuleFile(data []byte) (*RuleFile, error) {
	var file RuleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rule file: %w", err)
	}
	if file.Version != "" && file.Version != ResourceModifiersVersion {
		return nil, fmt.Errorf("unsupported rule file version '%s', expected '%s'", file.Version, ResourceModifiersVersion)
	}
	return &file, nil
}

// LoadRules appends the given rules to the builder through its public
// operations, so they are subject to the same checks as interactive edits.
func LoadRules(builder *RuleSetBuilder, rules []domain.ResourceModifierRule) error {
	for _, rule := range rules {
		index := builder.AddRule()
		conditions := rule.Conditions
		updates := []ConditionUpdate{
			SetNamespaceList(conditions.Namespaces),
			SetGroupResource(conditions.GroupResource),
			SetResourceNameRegex(conditions.ResourceNameRegex),
			SetLabelSelector(conditions.LabelSelector),
		}
		for _, update := range updates {
			if err := builder.UpdateCondition(index, update); err != nil {
				return err
			}
		}

		if err := builder.RemovePatch(index, 0); err != nil {
			return err
		}
		for _, patch := range rule.Patches {
			patchIndex, err := builder.AddPatch(index)
			if err != nil {
				return err
			}
			patchUpdates := []PatchUpdate{
				SetOperation(patch.Operation),
				SetPath(patch.Path),
				SetValue(patch.Value),
				SetFrom(patch.From),
			}
			for _, update := range patchUpdates {
				if err := builder.UpdatePatch(index, patchIndex, update); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
