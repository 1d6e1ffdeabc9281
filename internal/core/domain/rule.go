package domain

import (
	"fmt"
	"sort"
	"strings"

	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/util/validation"
)

// ResourceModifierConditions selects the resources a rule applies to. Empty
// Namespaces matches every namespace.
type ResourceModifierConditions struct {
	Namespaces        []string          `json:"namespaces,omitempty" yaml:"namespaces,omitempty"`
	GroupResource     string            `json:"groupResource,omitempty" yaml:"groupResource,omitempty"`
	ResourceNameRegex string            `json:"resourceNameRegex,omitempty" yaml:"resourceNameRegex,omitempty"`
	LabelSelector     map[string]string `json:"labelSelector,omitempty" yaml:"labelSelector,omitempty"`
}

// ResourceModifierRule pairs conditions with patches applied in order.
type ResourceModifierRule struct {
	Conditions ResourceModifierConditions `json:"conditions" yaml:"conditions"`
	Patches    []JSONPatch                `json:"patches" yaml:"patches"`
}

func CreateDefaultRule() ResourceModifierRule {
	return ResourceModifierRule{
		Conditions: ResourceModifierConditions{Namespaces: []string{"default"}},
		Patches:    []JSONPatch{CreateDefaultPatch()},
	}
}

// Clone returns a deep copy of the rule.
func (r ResourceModifierRule) Clone() ResourceModifierRule {
	clone := ResourceModifierRule{
		Conditions: ResourceModifierConditions{
			GroupResource:     r.Conditions.GroupResource,
			ResourceNameRegex: r.Conditions.ResourceNameRegex,
		},
		Patches: make([]JSONPatch, len(r.Patches)),
	}
	if r.Conditions.Namespaces != nil {
		clone.Conditions.Namespaces = append([]string{}, r.Conditions.Namespaces...)
	}
	if r.Conditions.LabelSelector != nil {
		clone.Conditions.LabelSelector = make(map[string]string, len(r.Conditions.LabelSelector))
		for k, v := range r.Conditions.LabelSelector {
			clone.Conditions.LabelSelector[k] = v
		}
	}
	for i, patch := range r.Patches {
		clone.Patches[i] = patch.DeepCopy()
	}
	return clone
}

// Validate checks the rule's conditions and every patch. An empty patch list
// is valid.
func (r ResourceModifierRule) Validate(ruleIndex int) []Violation {
	var violations []Violation

	keys := make([]string, 0, len(r.Conditions.LabelSelector))
	for key := range r.Conditions.LabelSelector {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if errs := validation.IsQualifiedName(key); len(errs) > 0 {
			violations = append(violations, Violation{
				RuleIndex:  ruleIndex,
				PatchIndex: -1,
				Field:      "labelSelector",
				Message:    fmt.Sprintf("has invalid key '%s': %s", key, strings.Join(errs, ", ")),
			})
		}
		if errs := validation.IsValidLabelValue(r.Conditions.LabelSelector[key]); len(errs) > 0 {
			violations = append(violations, Violation{
				RuleIndex:  ruleIndex,
				PatchIndex: -1,
				Field:      "labelSelector",
				Message:    fmt.Sprintf("has invalid value for '%s': %s", key, strings.Join(errs, ", ")),
			})
		}
	}

	for j, patch := range r.Patches {
		violations = append(violations, patch.Validate(ruleIndex, j)...)
	}
	return violations
}

// ParseNamespaces splits comma separated input, trims each entry and drops
// entries that are empty after trimming.
func ParseNamespaces(text string) []string {
	namespaces := []string{}
	for _, segment := range strings.Split(text, ",") {
		trimmed := strings.TrimSpace(segment)
		if trimmed != "" {
			namespaces = append(namespaces, trimmed)
		}
	}
	return namespaces
}

// ParseLabelSelector parses "key=value,key2=value2" into an exact-match map.
func ParseLabelSelector(text string) (map[string]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	set, err := labels.ConvertSelectorToLabelsMap(text)
	if err != nil {
		return nil, fmt.Errorf("invalid label selector '%s': %w", text, err)
	}
	return map[string]string(set), nil
}
