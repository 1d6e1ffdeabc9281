package core

import (
	"errors"
	"testing"

	"vdash/internal/core/domain"
	"vdash/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticClusters struct {
	cluster *domain.Cluster
}

func (s staticClusters) GetActive() (domain.Cluster, bool) {
	if s.cluster == nil {
		return domain.Cluster{}, false
	}
	return *s.cluster, true
}

func TestRequestRouter_ResolveBaseEndpoint(t *testing.T) {
	router := NewRequestRouter(staticClusters{cluster: &domain.Cluster{ID: "a", URL: "https://a.example"}}, nil)

	endpoint, err := router.ResolveBaseEndpoint()

	require.NoError(t, err)
	assert.Equal(t, "https://a.example/api", endpoint)
}

func TestRequestRouter_NoActiveCluster(t *testing.T) {
	router := NewRequestRouter(staticClusters{}, nil)

	_, err := router.ResolveBaseEndpoint()
	assert.ErrorIs(t, err, domain.ErrNoActiveCluster)

	_, err = router.Resolve()
	assert.ErrorIs(t, err, domain.ErrNoActiveCluster)
}

func TestRequestRouter_FollowsActiveSwitch(t *testing.T) {
	registry, _ := newEmptyRegistry(t)
	registry.Add("A", "https://a.example", domain.ClusterRoleBoth)
	b, _ := registry.Add("B", "https://b.example:8443", domain.ClusterRoleBoth)
	router := NewRequestRouter(registry, nil)

	endpoint, err := router.ResolveBaseEndpoint()
	require.NoError(t, err)
	assert.Equal(t, "https://a.example/api", endpoint)

	require.NoError(t, registry.SetActive(b.ID))
	endpoint, err = router.ResolveBaseEndpoint()
	require.NoError(t, err)
	assert.Equal(t, "https://b.example:8443/api", endpoint)
}

func TestRequestRouter_Resolve_MatchesBaseEndpoint(t *testing.T) {
	registry, _ := newEmptyRegistry(t)
	a, _ := registry.Add("A", "https://a.example", domain.ClusterRoleBoth)
	b, _ := registry.Add("B", "https://b.example:8443", domain.ClusterRoleDestination)
	router := NewRequestRouter(registry, nil)

	for _, id := range []string{a.ID, b.ID, a.ID} {
		require.NoError(t, registry.SetActive(id))

		route, err := router.Resolve()
		require.NoError(t, err)
		endpoint, err := router.ResolveBaseEndpoint()
		require.NoError(t, err)

		assert.Equal(t, id, route.Cluster.ID)
		assert.Equal(t, endpoint, route.BaseEndpoint)
	}
}

func TestRequestRouter_Resolve_Token(t *testing.T) {
	cluster := &domain.Cluster{ID: "a", Name: "A", URL: "https://a.example"}

	tests := []struct {
		name        string
		setupMock   func(*testutil.MockKeyring)
		expectToken string
		expectErr   bool
	}{
		{
			name: "stored token is attached",
			setupMock: func(k *testutil.MockKeyring) {
				k.On("HasKey", "cluster-a-token").Return(true, nil)
				k.On("GetKey", "cluster-a-token").Return("secret\n", nil)
			},
			expectToken: "secret",
		},
		{
			name: "no token stored",
			setupMock: func(k *testutil.MockKeyring) {
				k.On("HasKey", "cluster-a-token").Return(false, nil)
			},
		},
		{
			name: "unreachable keyring degrades to no token",
			setupMock: func(k *testutil.MockKeyring) {
				k.On("HasKey", "cluster-a-token").Return(false, errors.New("dbus unavailable"))
			},
		},
		{
			name: "read failure is an error",
			setupMock: func(k *testutil.MockKeyring) {
				k.On("HasKey", "cluster-a-token").Return(true, nil)
				k.On("GetKey", "cluster-a-token").Return("", errors.New("locked"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keyring := new(testutil.MockKeyring)
			tt.setupMock(keyring)
			router := NewRequestRouter(staticClusters{cluster: cluster}, keyring)

			route, err := router.Resolve()

			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "https://a.example/api", route.BaseEndpoint)
			assert.Equal(t, tt.expectToken, route.Token)
			assert.Equal(t, "a", route.Cluster.ID)
			keyring.AssertExpectations(t)
		})
	}
}
