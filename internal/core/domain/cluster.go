package domain

import (
	"fmt"
	"net/url"
	"strings"
)

type ClusterRole string

const (
	ClusterRoleSource      ClusterRole = "source"
	ClusterRoleDestination ClusterRole = "destination"
	ClusterRoleBoth        ClusterRole = "both"
)

const (
	DefaultClusterID   = "default"
	DefaultClusterName = "Default Cluster"
	DefaultClusterURL  = "http://localhost:8000"
)

func (r ClusterRole) IsValid() bool {
	switch r {
	case ClusterRoleSource, ClusterRoleDestination, ClusterRoleBoth:
		return true
	}
	return false
}

// Label returns the display form used in listings.
func (r ClusterRole) Label() string {
	switch r {
	case ClusterRoleSource:
		return "Source"
	case ClusterRoleDestination:
		return "Destination"
	case ClusterRoleBoth:
		return "Both"
	}
	return string(r)
}

// CanRestore reports whether a cluster with this role may receive restores.
func (r ClusterRole) CanRestore() bool {
	return r == ClusterRoleDestination || r == ClusterRoleBoth
}

// Cluster is a named backend connection.
type Cluster struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	URL  string      `json:"url"`
	Role ClusterRole `json:"role"`
}

// ClusterUpdate carries the fields to merge into an existing cluster. Nil
// fields are left untouched.
type ClusterUpdate struct {
	Name *string
	URL  *string
	Role *ClusterRole
}

// ClusterRegistryState is the persisted registry record.
type ClusterRegistryState struct {
	Clusters        []Cluster `json:"clusters"`
	ActiveClusterID *string   `json:"activeClusterId"`
}

// CreateDefaultRegistryState returns the state used when nothing has been
// persisted yet: a single local cluster that is active.
func CreateDefaultRegistryState() ClusterRegistryState {
	id := DefaultClusterID
	return ClusterRegistryState{
		Clusters: []Cluster{
			{ID: DefaultClusterID, Name: DefaultClusterName, URL: DefaultClusterURL, Role: ClusterRoleBoth},
		},
		ActiveClusterID: &id,
	}
}

func (s *ClusterRegistryState) IndexOf(id string) int {
	for i, c := range s.Clusters {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so that mutations can be prepared before they are
// committed.
func (s *ClusterRegistryState) Clone() ClusterRegistryState {
	clusters := make([]Cluster, len(s.Clusters))
	copy(clusters, s.Clusters)
	clone := ClusterRegistryState{Clusters: clusters}
	if s.ActiveClusterID != nil {
		id := *s.ActiveClusterID
		clone.ActiveClusterID = &id
	}
	return clone
}

// Validate checks a loaded registry record.
func (s *ClusterRegistryState) Validate() error {
	seen := make(map[string]bool, len(s.Clusters))
	for i, c := range s.Clusters {
		if c.ID == "" {
			return fmt.Errorf("cluster at index %d has empty id", i)
		}
		if seen[c.ID] {
			return fmt.Errorf("duplicate cluster id '%s'", c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}

// ValidateClusterFields checks the user-supplied fields of a cluster.
func ValidateClusterFields(name, rawURL string, role ClusterRole) []Violation {
	var violations []Violation
	if strings.TrimSpace(name) == "" {
		violations = append(violations, FieldViolation("name", "must not be empty"))
	}
	if v, ok := validateClusterURL(rawURL); !ok {
		violations = append(violations, v)
	}
	if !role.IsValid() {
		violations = append(
			violations,
			FieldViolation("role", fmt.Sprintf("must be one of source, destination, both (got '%s')", role)),
		)
	}
	return violations
}

func validateClusterURL(rawURL string) (Violation, bool) {
	if strings.TrimSpace(rawURL) == "" {
		return FieldViolation("url", "must not be empty"), false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return FieldViolation("url", fmt.Sprintf("is not a valid URL: %v", err)), false
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return FieldViolation("url", "must be an absolute URL with scheme and host"), false
	}
	return Violation{}, true
}
