package handler

import (
	"fmt"
	"strings"

	"vdash/internal/cli/output"
	"vdash/internal/core"
	"vdash/internal/core/domain"
	"vdash/internal/ports"
)

type ClusterCommandHandler struct {
	registry      *core.ClusterRegistry
	keyring       ports.Keyring
	terminalInput ports.TerminalInput
}

func ProvideClusterCommandHandler(
	registry *core.ClusterRegistry,
	keyring ports.Keyring,
	terminalInput ports.TerminalInput,
) ClusterCommandHandler {
	return ClusterCommandHandler{
		registry:      registry,
		keyring:       keyring,
		terminalInput: terminalInput,
	}
}

func (h *ClusterCommandHandler) HandleAdd(name, url, role string) error {
	cluster, err := h.registry.Add(name, strings.TrimRight(url, "/"), domain.ClusterRole(role))
	if err != nil {
		return err
	}
	output.PrintSuccess(fmt.Sprintf("Cluster '%s' added with id %s", cluster.Name, cluster.ID))
	if h.registry.ActiveID() == cluster.ID {
		output.PrintInfo(fmt.Sprintf("'%s' is now the active cluster", cluster.Name))
	}
	return nil
}

func (h *ClusterCommandHandler) HandleList() error {
	clusters := h.registry.List()
	if len(clusters) == 0 {
		output.PrintInfo("No clusters configured")
		fmt.Println(output.Dim("Add one with 'vdash cluster add <name> <url>'"))
		return nil
	}

	activeID := h.registry.ActiveID()
	output.PrintHeader(fmt.Sprintf("%d %s", len(clusters), output.Plural(len(clusters), "cluster", "clusters")))
	for _, cluster := range clusters {
		marker := " "
		name := cluster.Name
		if cluster.ID == activeID {
			marker = output.Success("*")
			name = output.Bold(name)
		}
		fmt.Printf("%s %s %s %s\n", marker, name, roleBadge(cluster.Role), output.Dim(cluster.URL))
		fmt.Printf("    %s\n", output.Secondary(cluster.ID))
	}
	return nil
}

// HandleRemove deletes a cluster. Removing the active cluster asks for
// confirmation on a terminal unless force is set.
func (h *ClusterCommandHandler) HandleRemove(id string, force bool) error {
	cluster, ok := h.registry.Get(id)
	if !ok {
		output.PrintWarning(fmt.Sprintf("No cluster with id %s", id))
		return nil
	}
	if !force && id == h.registry.ActiveID() && h.terminalInput.IsTerminal() {
		answer, err := h.terminalInput.ReadLine(fmt.Sprintf("'%s' is the active cluster. Remove it? [y/N]: ", cluster.Name))
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			output.PrintInfo("Aborted")
			return nil
		}
	}
	if err := h.registry.Remove(id); err != nil {
		return err
	}
	if err := h.keyring.DeleteKey(core.ClusterTokenKey(id)); err != nil {
		output.PrintWarning(fmt.Sprintf("Could not remove stored token for '%s': %v", cluster.Name, err))
	}
	output.PrintSuccess(fmt.Sprintf("Cluster '%s' removed", cluster.Name))

	if active, ok := h.registry.GetActive(); ok {
		output.PrintInfo(fmt.Sprintf("Active cluster: %s", active.Name))
	} else {
		output.PrintWarning("No active cluster; requests will fail until one is selected")
	}
	return nil
}

// ClusterUpdateOptions carries the flags of 'cluster update'. Nil fields are
// left unchanged.
type ClusterUpdateOptions struct {
	Name *string
	URL  *string
	Role *string
}

func (h *ClusterCommandHandler) HandleUpdate(id string, options ClusterUpdateOptions) error {
	if _, ok := h.registry.Get(id); !ok {
		return fmt.Errorf("cluster not found: %s", id)
	}
	if options.Name == nil && options.URL == nil && options.Role == nil {
		return fmt.Errorf("nothing to update: pass at least one of --name, --url or --role")
	}

	update := domain.ClusterUpdate{Name: options.Name}
	if options.URL != nil {
		url := strings.TrimRight(*options.URL, "/")
		update.URL = &url
	}
	if options.Role != nil {
		role := domain.ClusterRole(*options.Role)
		update.Role = &role
	}
	if err := h.registry.Update(id, update); err != nil {
		return err
	}

	cluster, _ := h.registry.Get(id)
	output.PrintSuccess(fmt.Sprintf("Cluster '%s' updated", cluster.Name))
	return nil
}

func (h *ClusterCommandHandler) HandleUse(id string) error {
	if err := h.registry.SetActive(id); err != nil {
		return err
	}
	cluster, _ := h.registry.GetActive()
	output.PrintSuccess(fmt.Sprintf("Switched to cluster '%s' (%s)", cluster.Name, cluster.URL))
	if !cluster.Role.CanRestore() {
		output.PrintWarning(fmt.Sprintf("'%s' is a source cluster; restores will be rejected", cluster.Name))
	}
	return nil
}

func (h *ClusterCommandHandler) HandleCurrent() error {
	cluster, ok := h.registry.GetActive()
	if !ok {
		return withConnectHint(&domain.NoActiveClusterError{})
	}
	fmt.Printf("%s %s\n", output.Bold(cluster.Name), roleBadge(cluster.Role))
	fmt.Printf("  id:  %s\n", cluster.ID)
	fmt.Printf("  url: %s\n", cluster.URL)
	return nil
}

func (h *ClusterCommandHandler) HandleLogin(id string) error {
	cluster, ok := h.registry.Get(id)
	if !ok {
		return fmt.Errorf("cluster not found: %s", id)
	}
	if !h.terminalInput.IsTerminal() {
		return fmt.Errorf("cannot read token: no terminal available")
	}

	token, err := h.terminalInput.ReadPassword(fmt.Sprintf("Enter API token for %s: ", output.Bold(cluster.Name)))
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	if err := h.keyring.SetKey(core.ClusterTokenKey(cluster.ID), token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	output.PrintSuccess(fmt.Sprintf("Token stored for '%s'", cluster.Name))
	return nil
}

func (h *ClusterCommandHandler) HandleLogout(id string) error {
	cluster, ok := h.registry.Get(id)
	if !ok {
		return fmt.Errorf("cluster not found: %s", id)
	}
	if err := h.keyring.DeleteKey(core.ClusterTokenKey(cluster.ID)); err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	output.PrintSuccess(fmt.Sprintf("Token removed for '%s'", cluster.Name))
	return nil
}

// ClusterIDs lists registered ids, used for shell completion.
func (h *ClusterCommandHandler) ClusterIDs() []string {
	clusters := h.registry.List()
	ids := make([]string, len(clusters))
	for i, cluster := range clusters {
		ids[i] = cluster.ID
	}
	return ids
}

func roleBadge(role domain.ClusterRole) string {
	badge := fmt.Sprintf("[%s]", role.Label())
	switch role {
	case domain.ClusterRoleSource:
		return output.Info(badge)
	case domain.ClusterRoleDestination:
		return output.Success(badge)
	default:
		return output.Secondary(badge)
	}
}
