package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"vdash/internal/cli/output"
	"vdash/internal/core"
	"vdash/internal/core/domain"
	"vdash/internal/ports"
)

type RestoreCommandHandler struct {
	workflow *core.RestoreWorkflow
	api      ports.VeleroAPI
	clusters *core.ClusterRegistry
}

func ProvideRestoreCommandHandler(
	workflow *core.RestoreWorkflow,
	api ports.VeleroAPI,
	clusters *core.ClusterRegistry,
) RestoreCommandHandler {
	return RestoreCommandHandler{
		workflow: workflow,
		api:      api,
		clusters: clusters,
	}
}

type RestoreOptions struct {
	Name               string
	BackupName         string
	IncludedNamespaces []string
	ExcludedNamespaces []string
	// RulesFile holds resource modifier rules; without it a plain restore is
	// created.
	RulesFile string
	DryRun    bool
}

func (h *RestoreCommandHandler) HandleCreate(ctx context.Context, options RestoreOptions) error {
	target := core.RestoreTarget{
		Name:               options.Name,
		BackupName:         options.BackupName,
		IncludedNamespaces: options.IncludedNamespaces,
		ExcludedNamespaces: options.ExcludedNamespaces,
	}

	if options.RulesFile == "" {
		if options.DryRun {
			return printJSON(domain.CreateRestoreRequest{
				Name:               target.Name,
				BackupName:         target.BackupName,
				IncludedNamespaces: target.IncludedNamespaces,
				ExcludedNamespaces: target.ExcludedNamespaces,
			})
		}
		restore, err := h.workflow.SubmitPlain(ctx, target)
		if err != nil {
			return withConnectHint(err)
		}
		h.printRestore(restore)
		return nil
	}

	builder, err := loadRuleSet(options.RulesFile)
	if err != nil {
		return err
	}

	if options.DryRun {
		if err := h.workflow.CheckPreconditions(target, builder); err != nil {
			return err
		}
		payload, err := builder.Serialize(target)
		if err != nil {
			return err
		}
		if err := core.ValidateRestorePayload(payload); err != nil {
			return err
		}
		return printJSON(payload)
	}

	restore, err := h.workflow.Submit(ctx, target, builder)
	if err != nil {
		return withConnectHint(err)
	}
	h.printRestore(restore)
	output.PrintSecondary(fmt.Sprintf(
		"%d %s applied",
		builder.Len(),
		output.Plural(builder.Len(), "modification rule", "modification rules"),
	))
	return nil
}

func (h *RestoreCommandHandler) HandleListBackups(ctx context.Context) error {
	backups, err := h.api.ListBackups(ctx)
	if err != nil {
		return withConnectHint(err)
	}
	if len(backups) == 0 {
		output.PrintInfo("No backups found")
		return nil
	}

	cluster, _ := h.clusters.GetActive()
	output.PrintHeader(fmt.Sprintf("Backups on %s", cluster.Name))
	for _, backup := range backups {
		fmt.Printf("  %s %s %s\n", output.Bold(backup.Name), phaseLabel(backup.Phase), output.Dim(backup.StartTimestamp))
		if backup.Errors > 0 || backup.Warnings > 0 {
			output.PrintSecondary(fmt.Sprintf(
				"%d %s, %d %s",
				backup.Errors, output.Plural(backup.Errors, "error", "errors"),
				backup.Warnings, output.Plural(backup.Warnings, "warning", "warnings"),
			))
		}
	}
	return nil
}

// BackupNames lists backups of the active cluster for shell completion. Any
// failure yields no suggestions.
func (h *RestoreCommandHandler) BackupNames(ctx context.Context) []string {
	backups, err := h.api.ListBackups(ctx)
	if err != nil {
		return nil
	}
	names := make([]string, len(backups))
	for i, backup := range backups {
		names[i] = backup.Name
	}
	return names
}

func (h *RestoreCommandHandler) printRestore(restore *domain.Restore) {
	cluster, _ := h.clusters.GetActive()
	output.PrintSuccess(fmt.Sprintf("Restore '%s' created on %s", restore.Name, cluster.Name))
	output.PrintSecondary(fmt.Sprintf("backup: %s, phase: %s", restore.BackupName, restore.Phase))
}

// loadRuleSet reads a rule file into a fresh builder.
func loadRuleSet(path string) (*core.RuleSetBuilder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", err)
	}
	file, err := core.ParseRuleFile(data)
	if err != nil {
		return nil, err
	}
	builder := core.NewRuleSetBuilder()
	if err := core.LoadRules(builder, file.ResourceModifierRules); err != nil {
		return nil, err
	}
	return builder, nil
}

func phaseLabel(phase string) string {
	switch phase {
	case "Completed":
		return output.Success(phase)
	case "Failed", "PartiallyFailed", "FailedValidation":
		return output.Error(phase)
	case "":
		return output.Dim("Unknown")
	default:
		return output.Warning(phase)
	}
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
