package core

import (
	"vdash/internal/core/domain"
)

// RestoreTarget names the restore a rule set is serialized for.
type RestoreTarget struct {
	Name               string
	BackupName         string
	IncludedNamespaces []string
	ExcludedNamespaces []string
}

// RuleSetBuilder is the in-memory, ordered list of modification rules edited
// by a single restore workflow. It is never persisted and is not safe for
// concurrent use.
type RuleSetBuilder struct {
	rules []domain.ResourceModifierRule
}

func NewRuleSetBuilder() *RuleSetBuilder {
	return &RuleSetBuilder{}
}

// AddRule appends a rule matching the "default" namespace with a single
// replace of /spec/replicas, and returns its index.
func (b *RuleSetBuilder) AddRule() int {
	b.rules = append(b.rules, domain.CreateDefaultRule())
	return len(b.rules) - 1
}

func (b *RuleSetBuilder) RemoveRule(index int) error {
	if err := b.checkRule(index); err != nil {
		return err
	}
	b.rules = append(b.rules[:index], b.rules[index+1:]...)
	return nil
}

func (b *RuleSetBuilder) UpdateCondition(ruleIndex int, update ConditionUpdate) error {
	if err := b.checkRule(ruleIndex); err != nil {
		return err
	}
	update.applyToConditions(&b.rules[ruleIndex].Conditions)
	return nil
}

// AddPatch appends a blank replace patch to the rule and returns its index.
func (b *RuleSetBuilder) AddPatch(ruleIndex int) (int, error) {
	if err := b.checkRule(ruleIndex); err != nil {
		return -1, err
	}
	rule := &b.rules[ruleIndex]
	rule.Patches = append(rule.Patches, domain.CreateBlankPatch())
	return len(rule.Patches) - 1, nil
}

func (b *RuleSetBuilder) RemovePatch(ruleIndex, patchIndex int) error {
	if err := b.checkPatch(ruleIndex, patchIndex); err != nil {
		return err
	}
	rule := &b.rules[ruleIndex]
	rule.Patches = append(rule.Patches[:patchIndex], rule.Patches[patchIndex+1:]...)
	return nil
}

func (b *RuleSetBuilder) UpdatePatch(ruleIndex, patchIndex int, update PatchUpdate) error {
	if err := b.checkPatch(ruleIndex, patchIndex); err != nil {
		return err
	}
	update.applyToPatch(&b.rules[ruleIndex].Patches[patchIndex])
	return nil
}

func (b *RuleSetBuilder) Len() int {
	return len(b.rules)
}

// Rules returns a deep copy of the current rules.
func (b *RuleSetBuilder) Rules() []domain.ResourceModifierRule {
	rules := make([]domain.ResourceModifierRule, len(b.rules))
	for i, rule := range b.rules {
		rules[i] = rule.Clone()
	}
	return rules
}

// Validate checks every rule and patch and reports all violations at once.
func (b *RuleSetBuilder) Validate() error {
	var violations []domain.Violation
	for i, rule := range b.rules {
		violations = append(violations, rule.Validate(i)...)
	}
	if len(violations) > 0 {
		return domain.NewValidationError(violations...)
	}
	return nil
}

// Serialize validates the rule set and produces the restore payload. It does
// not modify the builder, so repeated calls give identical payloads. An empty
// rule set serializes; requiring at least one rule is the workflow's check.
func (b *RuleSetBuilder) Serialize(target RestoreTarget) (domain.CreateRestoreWithModificationsRequest, error) {
	if err := b.Validate(); err != nil {
		return domain.CreateRestoreWithModificationsRequest{}, err
	}

	rules := make([]domain.ResourceModifierRule, len(b.rules))
	for i, rule := range b.rules {
		wire := rule.Clone()
		if len(wire.Conditions.Namespaces) == 0 {
			wire.Conditions.Namespaces = nil
		}
		for j := range wire.Patches {
			wire.Patches[j] = wire.Patches[j].Normalized()
		}
		rules[i] = wire
	}

	return domain.CreateRestoreWithModificationsRequest{
		Name:                  target.Name,
		BackupName:            target.BackupName,
		IncludedNamespaces:    nonEmpty(target.IncludedNamespaces),
		ExcludedNamespaces:    nonEmpty(target.ExcludedNamespaces),
		ResourceModifierRules: rules,
	}, nil
}

func (b *RuleSetBuilder) checkRule(index int) error {
	if index < 0 || index >= len(b.rules) {
		return &domain.IndexError{Collection: "rule", Index: index, Length: len(b.rules)}
	}
	return nil
}

func (b *RuleSetBuilder) checkPatch(ruleIndex, patchIndex int) error {
	if err := b.checkRule(ruleIndex); err != nil {
		return err
	}
	patches := b.rules[ruleIndex].Patches
	if patchIndex < 0 || patchIndex >= len(patches) {
		return &domain.IndexError{Collection: "patch", Index: patchIndex, Length: len(patches)}
	}
	return nil
}

func nonEmpty(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	return append([]string{}, values...)
}
