package core

import (
	"context"
	"fmt"
	"strings"

	"vdash/internal/core/domain"
	"vdash/internal/ports"
)

// RestoreWorkflow submits restores to the active cluster. It only validates
// and sends; the restore's progress is owned by the restore service.
type RestoreWorkflow struct {
	api      ports.VeleroAPI
	clusters ActiveClusterProvider
}

func ProvideRestoreWorkflow(api ports.VeleroAPI, clusters *ClusterRegistry) *RestoreWorkflow {
	return NewRestoreWorkflow(api, clusters)
}

func NewRestoreWorkflow(api ports.VeleroAPI, clusters ActiveClusterProvider) *RestoreWorkflow {
	return &RestoreWorkflow{api: api, clusters: clusters}
}

// CheckPreconditions runs the local checks that gate submission: a restore
// name, a backup name and at least one rule.
func (w *RestoreWorkflow) CheckPreconditions(target RestoreTarget, rules *RuleSetBuilder) error {
	violations := checkTarget(target)
	if rules == nil || rules.Len() == 0 {
		violations = append(violations, domain.FieldViolation("resourceModifierRules", "must contain at least one rule"))
	}
	if len(violations) > 0 {
		return domain.NewValidationError(violations...)
	}
	return nil
}

// Submit sends a restore with modifications. The builder is only read, so a
// cancelled or failed submission leaves it as it was.
func (w *RestoreWorkflow) Submit(
	ctx context.Context,
	target RestoreTarget,
	rules *RuleSetBuilder,
) (*domain.Restore, error) {
	if err := w.CheckPreconditions(target, rules); err != nil {
		return nil, err
	}
	if err := w.checkDestination(); err != nil {
		return nil, err
	}

	payload, err := rules.Serialize(target)
	if err != nil {
		return nil, err
	}
	if err := ValidateRestorePayload(payload); err != nil {
		return nil, err
	}

	restore, err := w.api.CreateRestoreWithModifications(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create restore %s: %w", target.Name, err)
	}
	return restore, nil
}

// SubmitPlain sends a restore without modification rules.
func (w *RestoreWorkflow) SubmitPlain(ctx context.Context, target RestoreTarget) (*domain.Restore, error) {
	if violations := checkTarget(target); len(violations) > 0 {
		return nil, domain.NewValidationError(violations...)
	}
	if err := w.checkDestination(); err != nil {
		return nil, err
	}

	restore, err := w.api.CreateRestore(ctx, domain.CreateRestoreRequest{
		Name:               target.Name,
		BackupName:         target.BackupName,
		IncludedNamespaces: nonEmpty(target.IncludedNamespaces),
		ExcludedNamespaces: nonEmpty(target.ExcludedNamespaces),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create restore %s: %w", target.Name, err)
	}
	return restore, nil
}

func (w *RestoreWorkflow) checkDestination() error {
	cluster, ok := w.clusters.GetActive()
	if !ok {
		return &domain.NoActiveClusterError{}
	}
	if !cluster.Role.CanRestore() {
		return domain.NewValidationError(domain.FieldViolation(
			"activeCluster",
			fmt.Sprintf("'%s' is a source cluster and cannot receive restores", cluster.Name),
		))
	}
	return nil
}

func checkTarget(target RestoreTarget) []domain.Violation {
	var violations []domain.Violation
	if strings.TrimSpace(target.Name) == "" {
		violations = append(violations, domain.FieldViolation("name", "must not be empty"))
	}
	if strings.TrimSpace(target.BackupName) == "" {
		violations = append(violations, domain.FieldViolation("backupName", "must not be empty"))
	}
	return violations
}
