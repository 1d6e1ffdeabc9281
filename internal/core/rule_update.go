package core

import "vdash/internal/core/domain"

// ConditionUpdate changes one field of a rule's conditions. Values are created
// with the Set* constructors below; the set is closed.
type ConditionUpdate interface {
	applyToConditions(conditions *domain.ResourceModifierConditions)
}

// PatchUpdate changes one field of a patch.
type PatchUpdate interface {
	applyToPatch(patch *domain.JSONPatch)
}

type namespacesUpdate []string

func (u namespacesUpdate) applyToConditions(c *domain.ResourceModifierConditions) {
	c.Namespaces = append([]string{}, u...)
}

// SetNamespaces parses comma separated free text, as typed by a user.
func SetNamespaces(text string) ConditionUpdate {
	return namespacesUpdate(domain.ParseNamespaces(text))
}

func SetNamespaceList(namespaces []string) ConditionUpdate {
	return namespacesUpdate(namespaces)
}

type groupResourceUpdate string

func (u groupResourceUpdate) applyToConditions(c *domain.ResourceModifierConditions) {
	c.GroupResource = string(u)
}

// SetGroupResource sets the resource in "<resource>.<group>" form, for example
// "deployments.apps". An empty value clears it.
func SetGroupResource(groupResource string) ConditionUpdate {
	return groupResourceUpdate(groupResource)
}

type resourceNameRegexUpdate string

func (u resourceNameRegexUpdate) applyToConditions(c *domain.ResourceModifierConditions) {
	c.ResourceNameRegex = string(u)
}

func SetResourceNameRegex(regex string) ConditionUpdate {
	return resourceNameRegexUpdate(regex)
}

type labelSelectorUpdate map[string]string

func (u labelSelectorUpdate) applyToConditions(c *domain.ResourceModifierConditions) {
	if len(u) == 0 {
		c.LabelSelector = nil
		return
	}
	c.LabelSelector = make(map[string]string, len(u))
	for k, v := range u {
		c.LabelSelector[k] = v
	}
}

func SetLabelSelector(selector map[string]string) ConditionUpdate {
	return labelSelectorUpdate(selector)
}

type operationUpdate domain.PatchOperation

func (u operationUpdate) applyToPatch(p *domain.JSONPatch) {
	p.Operation = domain.PatchOperation(u)
}

func SetOperation(operation domain.PatchOperation) PatchUpdate {
	return operationUpdate(operation)
}

type pathUpdate string

func (u pathUpdate) applyToPatch(p *domain.JSONPatch) {
	p.Path = string(u)
}

func SetPath(path string) PatchUpdate {
	return pathUpdate(path)
}

type valueUpdate struct {
	value interface{}
}

func (u valueUpdate) applyToPatch(p *domain.JSONPatch) {
	p.Value = domain.DeepCopyValue(u.value)
}

// SetValue sets the patch value. Nil clears it.
func SetValue(value interface{}) PatchUpdate {
	return valueUpdate{value: value}
}

type fromUpdate string

func (u fromUpdate) applyToPatch(p *domain.JSONPatch) {
	p.From = string(u)
}

func SetFrom(from string) PatchUpdate {
	return fromUpdate(from)
}
