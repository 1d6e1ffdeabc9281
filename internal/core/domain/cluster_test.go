package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateClusterFields(t *testing.T) {
	tests := []struct {
		name           string
		clusterName    string
		url            string
		role           ClusterRole
		expectedFields []string
	}{
		{"valid", "prod", "https://velero.example.com", ClusterRoleBoth, nil},
		{"valid with port and path", "local", "http://localhost:8000/dashboard/", ClusterRoleSource, nil},
		{"empty name", " ", "http://h1", ClusterRoleSource, []string{"name"}},
		{"empty url", "a", "", ClusterRoleSource, []string{"url"}},
		{"relative url", "a", "/api", ClusterRoleSource, []string{"url"}},
		{"no scheme", "a", "localhost:8000", ClusterRoleSource, []string{"url"}},
		{"scheme without host", "a", "http://", ClusterRoleSource, []string{"url"}},
		{"invalid role", "a", "http://h1", "primary", []string{"role"}},
		{"everything invalid", "", "::", "", []string{"name", "url", "role"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fields []string
			for _, v := range ValidateClusterFields(tt.clusterName, tt.url, tt.role) {
				fields = append(fields, v.Field)
			}
			assert.Equal(t, tt.expectedFields, fields)
		})
	}
}

func TestClusterRole_Label(t *testing.T) {
	assert.Equal(t, "Source", ClusterRoleSource.Label())
	assert.Equal(t, "Destination", ClusterRoleDestination.Label())
	assert.Equal(t, "Both", ClusterRoleBoth.Label())
	assert.False(t, ClusterRoleSource.CanRestore())
	assert.True(t, ClusterRoleDestination.CanRestore())
	assert.True(t, ClusterRoleBoth.CanRestore())
}

func TestClusterRegistryState_Clone(t *testing.T) {
	state := CreateDefaultRegistryState()

	clone := state.Clone()
	clone.Clusters[0].Name = "changed"
	*clone.ActiveClusterID = "other"

	assert.Equal(t, DefaultClusterName, state.Clusters[0].Name)
	assert.Equal(t, DefaultClusterID, *state.ActiveClusterID)
}

func TestClusterRegistryState_Validate(t *testing.T) {
	state := ClusterRegistryState{Clusters: []Cluster{{ID: "a"}, {ID: "a"}}}
	assert.ErrorContains(t, state.Validate(), "duplicate cluster id")

	state = ClusterRegistryState{Clusters: []Cluster{{ID: ""}}}
	assert.ErrorContains(t, state.Validate(), "empty id")

	state = CreateDefaultRegistryState()
	assert.NoError(t, state.Validate())
}
