package core

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"slices"

	"vdash/internal/core/domain"
	"vdash/internal/ports"

	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/labels"
	utilyaml "k8s.io/apimachinery/pkg/util/yaml"
	k8syaml "sigs.k8s.io/yaml"
)

// PreviewResult describes what the rule set does to one manifest document.
type PreviewResult struct {
	Kind          string
	Namespace     string
	Name          string
	GroupResource string
	// MatchedRules lists the rules whose conditions matched, applied or not.
	MatchedRules []int
	Failures     []RuleFailure
	// Patched is the document after every matching rule ran, as YAML.
	Patched []byte
}

type RuleFailure struct {
	RuleIndex int
	Err       error
}

// RulePreviewer runs a rule set locally against manifests, matching
// conditions and applying patches in order the way the restore service
// would. It exists so rules can be checked before a restore is submitted.
type RulePreviewer struct {
	applier ports.PatchApplier
}

func ProvideRulePreviewer(applier ports.PatchApplier) *RulePreviewer {
	return &RulePreviewer{applier: applier}
}

// Preview applies rules to every document of a YAML or JSON manifest stream.
func (p *RulePreviewer) Preview(rules []domain.ResourceModifierRule, manifests []byte) ([]PreviewResult, error) {
	matchers := make([]*regexp.Regexp, len(rules))
	for i, rule := range rules {
		if rule.Conditions.ResourceNameRegex == "" {
			continue
		}
		re, err := regexp.Compile(rule.Conditions.ResourceNameRegex)
		if err != nil {
			return nil, fmt.Errorf("rule %d: invalid resourceNameRegex: %w", i, err)
		}
		matchers[i] = re
	}

	documents, err := splitDocuments(manifests)
	if err != nil {
		return nil, err
	}
	var results []PreviewResult
	for n, document := range documents {
		result, err := p.previewDocument(rules, matchers, document)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", n, err)
		}
		results = append(results, result)
	}
	return results, nil
}

func (p *RulePreviewer) previewDocument(
	rules []domain.ResourceModifierRule,
	matchers []*regexp.Regexp,
	document []byte,
) (PreviewResult, error) {
	current, err := k8syaml.YAMLToJSON(document)
	if err != nil {
		return PreviewResult{}, fmt.Errorf("failed to parse manifest: %w", err)
	}
	var object unstructured.Unstructured
	if err := object.UnmarshalJSON(current); err != nil {
		return PreviewResult{}, fmt.Errorf("failed to read manifest: %w", err)
	}

	resource, _ := meta.UnsafeGuessKindToResource(object.GroupVersionKind())
	result := PreviewResult{
		Kind:          object.GetKind(),
		Namespace:     object.GetNamespace(),
		Name:          object.GetName(),
		GroupResource: resource.GroupResource().String(),
	}

	for i, rule := range rules {
		if !matches(rule.Conditions, matchers[i], &object, result.GroupResource) {
			continue
		}
		result.MatchedRules = append(result.MatchedRules, i)
		patched, err := p.applier.Apply(current, rule.Patches)
		if err != nil {
			result.Failures = append(result.Failures, RuleFailure{RuleIndex: i, Err: err})
			continue
		}
		current = patched
	}

	result.Patched, err = k8syaml.JSONToYAML(current)
	if err != nil {
		return PreviewResult{}, fmt.Errorf("failed to render patched manifest: %w", err)
	}
	return result, nil
}

func matches(
	conditions domain.ResourceModifierConditions,
	nameMatcher *regexp.Regexp,
	object *unstructured.Unstructured,
	groupResource string,
) bool {
	if len(conditions.Namespaces) > 0 && !slices.Contains(conditions.Namespaces, object.GetNamespace()) {
		return false
	}
	if conditions.GroupResource != "" && conditions.GroupResource != "*" && conditions.GroupResource != groupResource {
		return false
	}
	if nameMatcher != nil && !nameMatcher.MatchString(object.GetName()) {
		return false
	}
	if len(conditions.LabelSelector) > 0 {
		selector := labels.SelectorFromSet(labels.Set(conditions.LabelSelector))
		if !selector.Matches(labels.Set(object.GetLabels())) {
			return false
		}
	}
	return true
}

// splitDocuments splits a YAML stream into its documents and drops the ones
// that are empty.
func splitDocuments(stream []byte) ([][]byte, error) {
	reader := utilyaml.NewYAMLReader(bufio.NewReader(bytes.NewReader(stream)))
	var documents [][]byte
	for {
		document, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return documents, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest stream: %w", err)
		}
		if len(bytes.TrimSpace(document)) == 0 {
			continue
		}
		documents = append(documents, document)
	}
}
